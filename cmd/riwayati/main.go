// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command riwayati is the command-line client for a Riwayati API server.
package main

import (
	"os"

	"github.com/taibuivan/riwayati/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
