// This file is part of intcode - https://github.com/aegamesi/intcode
//
// Copyright 2019 The intcode Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package host

import (
	"strings"

	"github.com/aegamesi/intcode/vm"
)

// EncodeASCII converts s to input values, one per byte.
func EncodeASCII(s string) []vm.Cell {
	in := make([]vm.Cell, len(s))
	for i := 0; i < len(s); i++ {
		in[i] = vm.Cell(s[i])
	}
	return in
}

// DecodeASCII splits program output into text and values. Values in the ASCII
// range are returned as text, all others are returned in order in the values
// slice.
func DecodeASCII(out []vm.Cell) (text string, values []vm.Cell) {
	var b strings.Builder
	for _, v := range out {
		if v >= 0 && v < 128 {
			b.WriteByte(byte(v))
			continue
		}
		values = append(values, v)
	}
	return b.String(), values
}
