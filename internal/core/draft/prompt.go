// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package draft

import (
	"strings"

	"github.com/taibuivan/riwayati/internal/core/novel"
	"github.com/taibuivan/riwayati/pkg/pointer"
)

// BuildPrompt assembles the instruction sent to the provider. The output is
// asked for in Modern Standard Arabic with light Markdown emphasis.
func BuildPrompt(n *novel.Novel, chapterTitle, draftContent string) string {
	var b strings.Builder

	b.WriteString("أنت كاتب روايات محترف ومبدع.\n")
	b.WriteString("عنوان الرواية: " + n.Title + "\n")
	b.WriteString("وصف الرواية: " + pointer.Val(n.Description) + "\n")
	b.WriteString("عنوان الفصل الحالي: " + chapterTitle + "\n\n")
	b.WriteString("الفكرة أو البداية التي قدمها المستخدم:\n")
	b.WriteString(draftContent + "\n\n")
	b.WriteString("المهمة: بناءً على الفكرة أعلاه، اكتب فصلاً كاملاً ومفصلاً بأسلوب أدبي رفيع.\n")
	b.WriteString("يجب أن يكون الفصل غنياً بالوصف والحوارات وتطور الأحداث.\n")
	b.WriteString("استخدم تنسيق Markdown (مثل استخدام **للخط العريض** أو *للخط المائل* عند الحاجة للتأكيد الدرامي).\n")
	b.WriteString("اكتب باللغة العربية الفصحى.")

	return b.String()
}
