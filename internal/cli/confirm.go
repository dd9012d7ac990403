// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/riwayati/internal/workspace"
)

// affirmative answers accepted at a confirmation prompt.
var affirmative = map[string]bool{"y": true, "yes": true, "نعم": true}

// confirmer asks on stderr and reads one line from stdin; --yes skips the prompt.
func (a *app) confirmer(cmd *cobra.Command) workspace.Confirmer {
	return workspace.ConfirmFunc(func(prompt string) bool {
		if a.yes {
			return true
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N] ", prompt)
		line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		return affirmative[strings.ToLower(strings.TrimSpace(line))]
	})
}
