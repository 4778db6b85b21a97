/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package main

import (
	"github.com/BlueTheDuck/rcc/cmd/rcc"
)

func main() {
	rcc.Execute()
}
