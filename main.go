// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "vitapack-cli/cmd/vitapack"
)

func main() {
	cmd.Execute()
}
