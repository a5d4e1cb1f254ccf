package receipt

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// yenPrinter groups thousands the way Japanese receipts expect
// (comma every three digits).
var yenPrinter = message.NewPrinter(language.Japanese)

func formatYen(amount int) string {
	return yenPrinter.Sprintf("¥%d", amount)
}

// formatIssueDate renders an ISO date in the 2006年 01月 02日 display
// form used on the printed receipt.
func formatIssueDate(t time.Time) string {
	return fmt.Sprintf("%04d年 %02d月 %02d日", t.Year(), int(t.Month()), t.Day())
}
