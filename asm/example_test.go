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

package asm_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/aegamesi/intcode/asm"
	"github.com/aegamesi/intcode/vm"
)

func ExampleAssemble() {
	code := `
		jz 0 start		( skip over data )
:x		0
:y		0
:start	in [x]
		mul [x] 2 [y]
		out [y]
		hlt
`
	p, err := asm.Assemble("double", strings.NewReader(code))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p)

	m, _ := vm.New(p, vm.Input(21))
	if err = m.Run(); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(m.Outputs(), m.Status())

	// Output:
	// 1106,0,5,0,0,3,3,1002,3,2,4,4,4,99
	// [42] finished
}

func ExampleDisassembleAll() {
	p, _ := vm.Parse("1106,0,5,0,0,3,3,1002,3,2,4,4,4,99")
	asm.DisassembleAll(p, 0, os.Stdout)

	// Output:
	//      0	jz 0 5
	//      3	0
	//      4	0
	//      5	in [3]
	//      7	mul [3] 2 [4]
	//     11	out [4]
	//     13	hlt
}
