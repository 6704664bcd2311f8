package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"goodcents/internal/core"
)

// money renders a balance with thousands separators, e.g. -1234.5 -> "-$1,234.50".
func money(v float64) string {
	r := core.RoundCents(v)
	s := "$" + humanize.FormatFloat("#,###.##", math.Abs(r))
	if r < 0 {
		return "-" + s
	}
	return s
}

// signedMoney always shows the sign, e.g. 3 -> "+$3.00".
func signedMoney(v float64) string {
	if core.RoundCents(v) >= 0 {
		return "+" + money(v)
	}
	return money(v)
}

// parseAmount reads a user-entered amount like "1,250.5" or "$20".
func parseAmount(s string) (float64, error) {
	clean := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(s))
	d, err := decimal.NewFromString(clean)
	if err != nil || !d.IsPositive() {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidAmount, s)
	}
	f, _ := d.Round(2).Float64()
	return f, nil
}

func progressBar(fraction float64, width int) string {
	filled := int(math.Round(min(max(fraction, 0), 1) * float64(width)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func percent(fraction float64) string {
	return strconv.Itoa(int(math.Floor(fraction*100))) + "%"
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

var errNoInput = errors.New("no input")

// prompter reads answers from the player line by line.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	s, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		if err == io.EOF {
			return "", errNoInput
		}
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// choose asks for a number in [1, n] until one is given and returns it
// zero-based.
func (p *prompter) choose(prompt string, n int) (int, error) {
	for {
		s, err := p.line(prompt)
		if err != nil {
			return 0, err
		}
		i, err := strconv.Atoi(s)
		if err == nil && i >= 1 && i <= n {
			return i - 1, nil
		}
		fmt.Fprintf(p.out, "Please enter a number from 1 to %d.\n", n)
	}
}

func (p *prompter) amount(prompt string) (float64, error) {
	for {
		s, err := p.line(prompt)
		if err != nil {
			return 0, err
		}
		v, err := parseAmount(s)
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(p.out, core.UserMessage(err))
	}
}

func (p *prompter) confirm(prompt string) (bool, error) {
	s, err := p.line(prompt + " [y/N] ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
