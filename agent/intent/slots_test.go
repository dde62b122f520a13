package intent

import "testing"

func TestExtractSlotsPriceBounds(t *testing.T) {
	t.Parallel()

	slots := ExtractSlots("show me tumblers under RM50")
	if slots.PriceMax == nil || *slots.PriceMax != 50 {
		t.Fatalf("PriceMax = %v, want 50", slots.PriceMax)
	}
	if slots.Expression != "" {
		t.Fatalf("Expression = %q, price bounds must not become expressions", slots.Expression)
	}

	slots = ExtractSlots("flasks over rm60")
	if slots.PriceMin == nil || *slots.PriceMin != 60 {
		t.Fatalf("PriceMin = %v, want 60", slots.PriceMin)
	}
}

func TestExtractSlotsPercentTaxPhrase(t *testing.T) {
	t.Parallel()

	slots := ExtractSlots("what is 6% SST on RM55")
	if slots.Expression != "6% of 55" {
		t.Fatalf("Expression = %q, want %q", slots.Expression, "6% of 55")
	}
}

func TestExtractSlotsBareExpression(t *testing.T) {
	t.Parallel()

	slots := ExtractSlots("calculate 15 * 2 + 5 for me")
	if slots.Expression != "15 * 2 + 5" {
		t.Fatalf("Expression = %q, want %q", slots.Expression, "15 * 2 + 5")
	}
}

func TestExtractSlotsAliases(t *testing.T) {
	t.Parallel()

	slots := ExtractSlots("any outlet near klcc in kl with wi-fi open 24 hours")
	if slots.Landmark != "KLCC" {
		t.Fatalf("Landmark = %q, want KLCC", slots.Landmark)
	}
	if slots.Location != "Kuala Lumpur" {
		t.Fatalf("Location = %q, want Kuala Lumpur", slots.Location)
	}
	if slots.Service != "24-hours" {
		t.Fatalf("Service = %q, want 24-hours", slots.Service)
	}
}

func TestExtractSlotsShortAliasRespectsWordBoundaries(t *testing.T) {
	t.Parallel()

	// "kl" appears only inside "klcc" here, so no city may be extracted.
	slots := ExtractSlots("outlets near klcc")
	if slots.Location != "" {
		t.Fatalf("Location = %q, want empty", slots.Location)
	}
	if slots.Landmark != "KLCC" {
		t.Fatalf("Landmark = %q, want KLCC", slots.Landmark)
	}
}

func TestExtractSlotsServiceVariantsNormalize(t *testing.T) {
	t.Parallel()

	for _, msg := range []string{
		"open 24 hours",
		"open 24-hour",
		"open 24hr please",
		"round the clock outlets",
	} {
		slots := ExtractSlots(msg)
		if slots.Service != "24-hours" {
			t.Fatalf("ExtractSlots(%q).Service = %q, want 24-hours", msg, slots.Service)
		}
	}
}

func TestExtractSlotsMaterialAndCollection(t *testing.T) {
	t.Parallel()

	slots := ExtractSlots("do you have anything from the aqua collection in stainless steel")
	if slots.Material != "stainless steel" {
		t.Fatalf("Material = %q, want stainless steel", slots.Material)
	}
	if slots.Collection != "Aqua" {
		t.Fatalf("Collection = %q, want Aqua", slots.Collection)
	}
}
