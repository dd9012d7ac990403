// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/riwayati/pkg/slug"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"arabic_kept", "رحلة الصحراء", "رحلة الصحراء"},
		{"diacritics_kept", "كِتَاب", "كِتَاب"},
		{"illegal_replaced", `a/b\c:d*e?f"g<h>i|j`, "a_b_c_d_e_f_g_h_i_j"},
		{"whitespace_collapsed", "  two   words\t", "two words"},
		{"control_dropped", "line\none", "lineone"},
		{"dots_trimmed", "..hidden.", "hidden"},
		{"empty_fallback", "   ", slug.Fallback},
		{"nfc", "é", "é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.FileName(tt.input))
		})
	}
}
