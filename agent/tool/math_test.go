package tool

import (
	"errors"
	"math"
	"strings"
	"testing"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
)

func TestEvaluatePrecedence(t *testing.T) {
	t.Parallel()

	result, err := Evaluate("15 * 2 + 5")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if result.Value != 35 {
		t.Fatalf("Evaluate() = %v, want 35", result.Value)
	}
	if len(result.Steps) != 2 {
		t.Fatalf("Steps = %v, want 2 entries", result.Steps)
	}
}

func TestEvaluatePercentOf(t *testing.T) {
	t.Parallel()

	result, err := Evaluate("6% of 55")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if math.Abs(result.Value-3.3) > 1e-9 {
		t.Fatalf("Evaluate() = %v, want 3.3", result.Value)
	}
}

func TestEvaluateModuloBetweenValues(t *testing.T) {
	t.Parallel()

	result, err := Evaluate("10 % 3")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if result.Value != 1 {
		t.Fatalf("Evaluate() = %v, want 1", result.Value)
	}
}

func TestEvaluateTrailingPercent(t *testing.T) {
	t.Parallel()

	result, err := Evaluate("50%")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if math.Abs(result.Value-0.5) > 1e-9 {
		t.Fatalf("Evaluate() = %v, want 0.5", result.Value)
	}
}

func TestEvaluateCurrencyMarkerDropped(t *testing.T) {
	t.Parallel()

	result, err := Evaluate("rm 55 + rm 5")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if result.Value != 60 {
		t.Fatalf("Evaluate() = %v, want 60", result.Value)
	}
}

func TestEvaluateRejectsNonMathematicalInput(t *testing.T) {
	t.Parallel()

	cases := []string{
		"banana + apple",
		"DROP TABLE products",
		"",
		"(1 + 2",
		"1..5 + 2",
	}
	for _, expr := range cases {
		if _, err := Evaluate(expr); !errors.Is(err, contractx.ErrNonMathematicalInput) {
			t.Fatalf("Evaluate(%q) error = %v, want ErrNonMathematicalInput", expr, err)
		}
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{"10 / 0", "10 % 0"} {
		if _, err := Evaluate(expr); !errors.Is(err, contractx.ErrDivisionByZero) {
			t.Fatalf("Evaluate(%q) error = %v, want ErrDivisionByZero", expr, err)
		}
	}
}

func TestEvaluateTokenBudget(t *testing.T) {
	t.Parallel()

	expr := "1" + strings.Repeat("+1", maxExpressionTokens)
	if _, err := Evaluate(expr); !errors.Is(err, contractx.ErrExpressionTooComplex) {
		t.Fatalf("Evaluate() error = %v, want ErrExpressionTooComplex", err)
	}
}

func TestEvaluateNestingBudget(t *testing.T) {
	t.Parallel()

	expr := strings.Repeat("(", maxNestingDepth+1) + "1" + strings.Repeat(")", maxNestingDepth+1)
	if _, err := Evaluate(expr); !errors.Is(err, contractx.ErrExpressionTooComplex) {
		t.Fatalf("Evaluate() error = %v, want ErrExpressionTooComplex", err)
	}
}

func TestEvaluateSingleOperationHasNoSteps(t *testing.T) {
	t.Parallel()

	result, err := Evaluate("2 + 3")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(result.Steps) != 0 {
		t.Fatalf("Steps = %v, want none for a single operation", result.Steps)
	}
}

func TestFailureMessageCoversSentinels(t *testing.T) {
	t.Parallel()

	for _, err := range []error{
		contractx.ErrNonMathematicalInput,
		contractx.ErrDivisionByZero,
		contractx.ErrExpressionTooComplex,
		errors.New("something else"),
	} {
		if msg := FailureMessage(err); strings.TrimSpace(msg) == "" {
			t.Fatalf("FailureMessage(%v) is empty", err)
		}
	}
}
