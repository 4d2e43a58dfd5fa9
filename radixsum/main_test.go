package main

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/p7r0x7/radixhash"
)

func run(t *testing.T, input string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldIn, oldOut, oldErr := stdin, stdout, stderr
	stdin, stdout, stderr = strings.NewReader(input), &out, &errOut
	t.Cleanup(func() { stdin, stdout, stderr = oldIn, oldOut, oldErr })
	code := program(args)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStringSucceeds(t *testing.T) {
	code, out, _ := run(t, "", "--no-codes", "-s", "a")
	if code != success {
		t.Fatalf("exit code = %d, want %d", code, success)
	}
	if want := radixhash.Sum([]byte("a")).Hex() + `  "a"` + "\n"; out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRenderings(t *testing.T) {
	d := radixhash.Sum([]byte("hello"))
	for _, tc := range []struct {
		flag, want string
	}{
		{"--quiet", d.Hex()},
		{"-B", d.String()},
		{"-b", base64.StdEncoding.EncodeToString(d[:])},
	} {
		code, out, _ := run(t, "", "--quiet", tc.flag, "-s", "hello")
		if code != success || out != tc.want+"\n" {
			t.Errorf("%s: exit %d, output %q; want %q", tc.flag, code, out, tc.want)
		}
	}
}

func TestFilesAndStdin(t *testing.T) {
	path := writeFile(t, t.TempDir(), "msg", "hello world")
	code, out, _ := run(t, "", "--no-codes", path)
	if want := radixhash.Sum([]byte("hello world")).Hex() + "  " + filepath.Clean(path) + "\n"; code != success || out != want {
		t.Fatalf("file: exit %d, output %q; want %q", code, out, want)
	}

	code, out, _ = run(t, "b", "--quiet", "-")
	if code != success || out != radixhash.Sum([]byte("b")).Hex()+"\n" {
		t.Fatalf("stdin: exit %d, output %q", code, out)
	}
}

func TestPrompt(t *testing.T) {
	code, out, errOut := run(t, "hello world\r\n", "--no-codes", "-p")
	if code != success {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(errOut, "Enter text to hash: ") {
		t.Fatalf("prompt missing from stderr: %q", errOut)
	}
	if want := radixhash.Sum([]byte("hello world")).Hex() + `  "hello world"` + "\n"; out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestMissingFileFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")
	code, out, errOut := run(t, "", "--no-codes", missing)
	if code != failure {
		t.Fatalf("exit code = %d, want %d", code, failure)
	}
	if out != "" || !strings.Contains(errOut, "1 target is a directory") {
		t.Fatalf("stdout %q, stderr %q", out, errOut)
	}

	/* A failure does not leak into the next run. */
	if code, _, _ := run(t, "", "--quiet", "-s", "a"); code != success {
		t.Fatalf("exit code after a failed run = %d", code)
	}
}

func TestInvalidFlags(t *testing.T) {
	for _, args := range [][]string{
		{"--fold=bogus", "-s", "a"},
		{"--no-such-flag", "-s", "a"},
	} {
		if code, out, _ := run(t, "", args...); code != invalid || out != "" {
			t.Errorf("%v: exit %d, output %q; want %d and nothing", args, code, out, invalid)
		}
	}
}

func TestHelp(t *testing.T) {
	code, out, errOut := run(t, "", "--no-codes")
	if code != success || out != "" {
		t.Fatalf("exit %d, output %q", code, out)
	}
	for _, want := range []string{"Usage:", "--check", "--trace", "--fold"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("help lacks %q", want)
		}
	}
	if strings.Contains(errOut, "--debug") {
		t.Error("help lists the hidden --debug flag")
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	a, b := writeFile(t, dir, "a", "a"), writeFile(t, dir, "b", "b")
	da, db := radixhash.Sum([]byte("a")), radixhash.Sum([]byte("b"))

	good := writeFile(t, dir, "good.sums", da.Hex()+"  "+a+"\n"+db.String()+"  "+b+"\r\n")
	code, out, _ := run(t, "", "--no-codes", "-c", good)
	if code != success {
		t.Fatalf("good list: exit %d, output %q", code, out)
	}
	if want := a + ": OK\n" + b + ": OK\n"; out != want {
		t.Fatalf("good list output = %q, want %q", out, want)
	}

	bad := writeFile(t, dir, "bad.sums", db.Hex()+"  "+a+"\nnot a line\n")
	code, out, errOut := run(t, "", "--no-codes", "-c", bad)
	if code != failure {
		t.Fatalf("bad list: exit %d, want %d", code, failure)
	}
	if out != a+": FAILED\n" || !strings.Contains(errOut, "2 targets") {
		t.Fatalf("bad list: stdout %q, stderr %q", out, errOut)
	}
}

func TestTrace(t *testing.T) {
	msg := strings.Repeat("The quick brown fox jumps over the lazy dog.", 3)
	want := radixhash.Sum([]byte(msg)).Hex()
	doubled, blocks := radixhash.SumTraceWith([]byte(msg), radixhash.FoldDoubled)

	code, out, _ := run(t, "", "--no-codes", "--trace", "--fold=doubled", "-s", msg)
	if code != success {
		t.Fatalf("exit code = %d", code)
	}
	for _, s := range []string{"(doubled fold)", "Blocks:          2", "--- Block 1 ---", "--- Block 2 ---",
		"Residue: " + blocks[0], "Residue: " + blocks[1]} {
		if !strings.Contains(out, s) {
			t.Errorf("trace lacks %q", s)
		}
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, want+"  ") {
		t.Fatalf("digest line = %.40q..., want the carry-fold digest", last)
	}
	if doubled.Hex() == want {
		t.Fatal("doubled and carry digests coincide")
	}
}
