package tool

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
)

// Hard budgets so pathological input cannot stall a request.
const (
	maxExpressionTokens = 64
	maxNestingDepth     = 16
	maxOperations       = 64
)

// Evaluate validates and evaluates an arithmetic expression.
//
// The allow-list gate runs before anything else: digits, decimal points, the
// operators + - * / % ^ ( ), whitespace, an optional RM currency marker, and
// the "of" keyword of percentage syntax. Any other token fails with
// ErrNonMathematicalInput; untrusted text is never partially evaluated.
//
// "N% of M" desugars to (N/100)*M and a trailing "N%" to (N/100); a "%"
// directly between two values stays modulo.
func Evaluate(expression string) (contractx.CalcResult, error) {
	expression = strings.TrimSpace(expression)

	tokens, err := lexExpression(expression)
	if err != nil {
		return contractx.CalcResult{}, err
	}

	canonical, err := desugarPercent(tokens)
	if err != nil {
		return contractx.CalcResult{}, err
	}

	p := &mathParser{input: canonical}
	value, err := p.parseExpr()
	if err != nil {
		return contractx.CalcResult{}, err
	}
	p.skipSpaces()
	if p.hasNext() {
		return contractx.CalcResult{}, fmt.Errorf("%w: unexpected token at position %d", contractx.ErrNonMathematicalInput, p.pos)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return contractx.CalcResult{}, fmt.Errorf("%w: result is not a finite number", contractx.ErrExpressionTooComplex)
	}

	result := contractx.CalcResult{
		Expression: expression,
		Value:      value,
	}
	if p.ops >= 2 {
		result.Steps = p.steps
	}
	return result, nil
}

/* ------------------------------- lexing ------------------------------- */

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokOperator
	tokLParen
	tokRParen
	tokOf
)

type mathToken struct {
	kind tokenKind
	text string
}

// lexExpression is the validation gate. It rejects any character or word
// outside the arithmetic allow-list and enforces the token budget.
func lexExpression(expression string) ([]mathToken, error) {
	if expression == "" {
		return nil, fmt.Errorf("%w: expression is empty", contractx.ErrNonMathematicalInput)
	}

	lower := strings.ToLower(expression)
	tokens := make([]mathToken, 0, 16)
	balance := 0

	for i := 0; i < len(lower); {
		ch := lower[i]
		switch {
		case ch == ' ' || ch == '\t':
			i++
		case ch >= '0' && ch <= '9' || ch == '.':
			start := i
			dots := 0
			for i < len(lower) && (lower[i] >= '0' && lower[i] <= '9' || lower[i] == '.') {
				if lower[i] == '.' {
					dots++
				}
				i++
			}
			if dots > 1 {
				return nil, fmt.Errorf("%w: malformed number %q", contractx.ErrNonMathematicalInput, lower[start:i])
			}
			tokens = append(tokens, mathToken{kind: tokNumber, text: lower[start:i]})
		case ch == '+' || ch == '-' || ch == '*' || ch == '/' || ch == '%' || ch == '^':
			tokens = append(tokens, mathToken{kind: tokOperator, text: string(ch)})
			i++
		case ch == '(':
			balance++
			tokens = append(tokens, mathToken{kind: tokLParen, text: "("})
			i++
		case ch == ')':
			balance--
			if balance < 0 {
				return nil, fmt.Errorf("%w: unbalanced parentheses", contractx.ErrNonMathematicalInput)
			}
			tokens = append(tokens, mathToken{kind: tokRParen, text: ")"})
			i++
		case ch >= 'a' && ch <= 'z':
			start := i
			for i < len(lower) && lower[i] >= 'a' && lower[i] <= 'z' {
				i++
			}
			word := lower[start:i]
			switch word {
			case "of":
				tokens = append(tokens, mathToken{kind: tokOf, text: word})
			case "rm":
				// Currency marker, dropped.
			default:
				return nil, fmt.Errorf("%w: unexpected word %q", contractx.ErrNonMathematicalInput, word)
			}
		default:
			return nil, fmt.Errorf("%w: unexpected character %q", contractx.ErrNonMathematicalInput, string(ch))
		}

		if len(tokens) > maxExpressionTokens {
			return nil, fmt.Errorf("%w: over %d tokens", contractx.ErrExpressionTooComplex, maxExpressionTokens)
		}
	}

	if balance != 0 {
		return nil, fmt.Errorf("%w: unbalanced parentheses", contractx.ErrNonMathematicalInput)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: expression is empty", contractx.ErrNonMathematicalInput)
	}
	return tokens, nil
}

// desugarPercent rewrites percentage syntax into plain arithmetic:
//
//	N% of M  ->  (N/100)*M
//	N%       ->  (N/100)        when not followed by a value (else modulo)
func desugarPercent(tokens []mathToken) (string, error) {
	var b strings.Builder
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if tok.kind == tokOf {
			return "", fmt.Errorf("%w: misplaced 'of'", contractx.ErrNonMathematicalInput)
		}

		isPercent := tok.kind == tokNumber &&
			i+1 < len(tokens) &&
			tokens[i+1].kind == tokOperator && tokens[i+1].text == "%"
		if !isPercent {
			b.WriteString(tok.text)
			b.WriteByte(' ')
			continue
		}

		switch {
		case i+2 < len(tokens) && tokens[i+2].kind == tokOf:
			// N% of M
			b.WriteString("(" + tok.text + "/100)*")
			i += 2
		case i+2 < len(tokens) && (tokens[i+2].kind == tokNumber || tokens[i+2].kind == tokLParen):
			// Modulo: a value follows directly.
			b.WriteString(tok.text + " % ")
			i++
		default:
			// Trailing percent literal.
			b.WriteString("(" + tok.text + "/100)")
			i++
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(b.String()), nil
}

/* ------------------------------- parsing ------------------------------- */

type mathParser struct {
	input string
	pos   int
	depth int
	ops   int
	steps []string
}

func (p *mathParser) recordOp(left float64, op string, right, result float64) error {
	p.ops++
	if p.ops > maxOperations {
		return fmt.Errorf("%w: over %d operations", contractx.ErrExpressionTooComplex, maxOperations)
	}
	p.steps = append(p.steps, fmt.Sprintf("%s %s %s = %s",
		formatNumber(left), op, formatNumber(right), formatNumber(result)))
	return nil
}

func (p *mathParser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}

	for {
		p.skipSpaces()
		switch {
		case p.match('+'):
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			result := left + right
			if err := p.recordOp(left, "+", right, result); err != nil {
				return 0, err
			}
			left = result
		case p.match('-'):
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			result := left - right
			if err := p.recordOp(left, "-", right, result); err != nil {
				return 0, err
			}
			left = result
		default:
			return left, nil
		}
	}
}

func (p *mathParser) parseTerm() (float64, error) {
	left, err := p.parsePower()
	if err != nil {
		return 0, err
	}

	for {
		p.skipSpaces()
		switch {
		case p.match('*'):
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			result := left * right
			if err := p.recordOp(left, "*", right, result); err != nil {
				return 0, err
			}
			left = result
		case p.match('/'):
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("%w: %s / 0", contractx.ErrDivisionByZero, formatNumber(left))
			}
			result := left / right
			if err := p.recordOp(left, "/", right, result); err != nil {
				return 0, err
			}
			left = result
		case p.match('%'):
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("%w: %s %% 0", contractx.ErrDivisionByZero, formatNumber(left))
			}
			result := math.Mod(left, right)
			if err := p.recordOp(left, "%", right, result); err != nil {
				return 0, err
			}
			left = result
		default:
			return left, nil
		}
	}
}

func (p *mathParser) parsePower() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}

	p.skipSpaces()
	if p.match('^') {
		right, err := p.parsePower()
		if err != nil {
			return 0, err
		}
		result := math.Pow(left, right)
		if err := p.recordOp(left, "^", right, result); err != nil {
			return 0, err
		}
		return result, nil
	}
	return left, nil
}

func (p *mathParser) parseUnary() (float64, error) {
	p.skipSpaces()
	if p.match('+') {
		return p.parseUnary()
	}
	if p.match('-') {
		value, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -value, nil
	}
	return p.parsePrimary()
}

func (p *mathParser) parsePrimary() (float64, error) {
	p.skipSpaces()
	if p.match('(') {
		p.depth++
		if p.depth > maxNestingDepth {
			return 0, fmt.Errorf("%w: nesting deeper than %d", contractx.ErrExpressionTooComplex, maxNestingDepth)
		}
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if !p.match(')') {
			return 0, fmt.Errorf("%w: missing closing parenthesis at position %d", contractx.ErrNonMathematicalInput, p.pos)
		}
		p.depth--
		return value, nil
	}
	return p.parseNumber()
}

func (p *mathParser) parseNumber() (float64, error) {
	p.skipSpaces()
	start := p.pos
	hasDigit := false
	hasDot := false

	for p.hasNext() {
		ch := p.peek()
		switch {
		case ch >= '0' && ch <= '9':
			hasDigit = true
			p.pos++
		case ch == '.':
			if hasDot {
				return 0, fmt.Errorf("%w: invalid number at position %d", contractx.ErrNonMathematicalInput, p.pos)
			}
			hasDot = true
			p.pos++
		default:
			goto done
		}
	}

done:
	if !hasDigit {
		return 0, fmt.Errorf("%w: expected number at position %d", contractx.ErrNonMathematicalInput, start)
	}

	raw := p.input[start:p.pos]
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid number %q", contractx.ErrNonMathematicalInput, raw)
	}
	return value, nil
}

func (p *mathParser) skipSpaces() {
	for p.hasNext() && p.peek() == ' ' {
		p.pos++
	}
}

func (p *mathParser) hasNext() bool {
	return p.pos < len(p.input)
}

func (p *mathParser) peek() byte {
	return p.input[p.pos]
}

func (p *mathParser) match(expected byte) bool {
	if p.hasNext() && p.peek() == expected {
		p.pos++
		return true
	}
	return false
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FailureMessage converts a calculator error into the user-facing
// explanation the planner embeds in its reply.
func FailureMessage(err error) string {
	switch {
	case errors.Is(err, contractx.ErrDivisionByZero):
		return "That calculation divides by zero, which has no defined result."
	case errors.Is(err, contractx.ErrExpressionTooComplex):
		return "That expression is too long for me to evaluate safely. Could you break it into smaller parts?"
	case errors.Is(err, contractx.ErrNonMathematicalInput):
		return "I can only calculate plain arithmetic, like 15 * 2 + 5 or 6% of 55."
	default:
		return "I couldn't work that one out. Could you rephrase the calculation?"
	}
}
