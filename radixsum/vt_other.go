//go:build !windows

package main

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

func enableVirtualTerminal() error { return nil }
