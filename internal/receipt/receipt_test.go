package receipt

import (
	"regexp"
	"testing"
	"time"
)

func TestTaxAndTotal(t *testing.T) {
	cases := []struct {
		amount int
		tax    int
		total  int
	}{
		{0, 0, 0},
		{9, 0, 9},
		{999, 99, 1098},
		{10000, 1000, 11000},
		{12345, 1234, 13579},
		{1234567, 123456, 1358023},
	}
	for _, tc := range cases {
		d := Data{AmountTaxExcluded: tc.amount}
		if got := d.TaxAmount(); got != tc.tax {
			t.Errorf("TaxAmount(%d) = %d, want %d", tc.amount, got, tc.tax)
		}
		if got := d.TotalAmount(); got != tc.total {
			t.Errorf("TotalAmount(%d) = %d, want %d", tc.amount, got, tc.total)
		}
	}
}

func TestFormattedFields(t *testing.T) {
	d := Data{
		Date:              "2026年 02月 14日",
		Name:              "株式会社 テスト商事",
		AmountTaxExcluded: 10000,
		Description:       "商品代として",
	}
	fields := d.FormattedFields()

	want := map[string]string{
		"date":        "2026年 02月 14日",
		"name":        "株式会社 テスト商事",
		"amount":      "¥11,000-",
		"tax":         "¥1,000",
		"breakdown":   "¥10,000",
		"description": "商品代として",
	}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d: %+v", len(fields), len(want), fields)
	}
	for k, w := range want {
		if fields[k] != w {
			t.Errorf("fields[%q] = %q, want %q", k, fields[k], w)
		}
	}
}

func TestFormattedFieldsZeroAmount(t *testing.T) {
	fields := Data{AmountTaxExcluded: 0}.FormattedFields()
	if fields["amount"] != "¥0-" {
		t.Fatalf("amount = %q, want ¥0-", fields["amount"])
	}
	if fields["tax"] != "¥0" {
		t.Fatalf("tax = %q, want ¥0", fields["tax"])
	}
}

func TestFormattedAmountPattern(t *testing.T) {
	totalPat := regexp.MustCompile(`^¥\d{1,3}(,\d{3})*-$`)
	taxPat := regexp.MustCompile(`^¥\d{1,3}(,\d{3})*$`)

	for _, amount := range []int{0, 1, 42, 100, 999, 1000, 9999, 123456, 7890123} {
		fields := Data{AmountTaxExcluded: amount}.FormattedFields()
		if !totalPat.MatchString(fields["amount"]) {
			t.Errorf("amount %d: total %q does not match pattern", amount, fields["amount"])
		}
		if !taxPat.MatchString(fields["tax"]) {
			t.Errorf("amount %d: tax %q does not match pattern", amount, fields["tax"])
		}
		if !taxPat.MatchString(fields["breakdown"]) {
			t.Errorf("amount %d: breakdown %q does not match pattern", amount, fields["breakdown"])
		}
	}
}

func TestFormatIssueDate(t *testing.T) {
	got := formatIssueDate(time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC))
	if got != "2026年 02月 14日" {
		t.Fatalf("formatIssueDate = %q", got)
	}
}
