// Copyright 2026 KonektivaDev
// SPDX-License-Identifier: AGPL-3.0

package main

import "github.com/KonektivaDev/alfaplus-base-saas/cmd"

func main() {
	cmd.Execute()
}
