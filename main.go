// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "pywork/cmd/pywork"
)

func main() {
	cmd.Execute()
}
