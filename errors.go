package radixhash

import "errors"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var (
	// ErrInvalidBlockSize reports a block that cannot be split into two equal halves.
	ErrInvalidBlockSize = errors.New("radixhash: block size must be even")
	// ErrInvalidDigest reports a string that is not a 772-character binary digest.
	ErrInvalidDigest = errors.New("radixhash: malformed digest")
)
