package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/term"

	"github.com/dmitrijs2005/gigbook/internal/common"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from
// reader. If EOF occurs after some input was read, the partial line is
// returned.
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetRequiredText re-prompts until a non-empty line is entered.
func GetRequiredText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	for {
		s, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
		fmt.Fprintln(w, "A value is required.")
	}
}

// GetPassword reads a password from the terminal without echo.
func GetPassword(w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// ParseAmount accepts "1234.5" and the Brazilian "1.234,50".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, common.Invalid("amount", "not a number")
	}
	return d, nil
}

// GetAmount prompts until a valid amount is entered. An empty answer
// yields def.
func GetAmount(reader *bufio.Reader, prompt string, w io.Writer, def decimal.Decimal) (decimal.Decimal, error) {
	for {
		s, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return decimal.Zero, err
		}
		if s == "" {
			return def, nil
		}
		d, err := ParseAmount(s)
		if err == nil {
			return d, nil
		}
		fmt.Fprintln(w, "Invalid amount, try again (e.g. 1500 or 1.500,00).")
	}
}

// dateLayouts are tried in order by ParseDay.
var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// ParseDay accepts ISO dates and dd/mm/yyyy, at midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(s), loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, common.Invalid("date", "use YYYY-MM-DD or DD/MM/YYYY")
}
