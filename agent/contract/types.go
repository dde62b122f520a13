package contract

// Intent is the classified purpose of a user message.
type Intent string

const (
	IntentCalculation   Intent = "calculation"
	IntentProductSearch Intent = "product_search"
	IntentOutletSearch  Intent = "outlet_search"
	IntentFarewell      Intent = "farewell"
	IntentGreeting      Intent = "greeting"
	IntentGeneralChat   Intent = "general_chat"
	IntentUnknown       Intent = "unknown"
)

// Action is what the planner decided to do with a turn.
type Action string

const (
	ActionAnswerDirect     Action = "answer_direct"
	ActionInvokeSearch     Action = "invoke_search"
	ActionInvokeCalculator Action = "invoke_calculator"
	ActionAskClarification Action = "ask_clarification"
	ActionEndConversation  Action = "end_conversation"
)

// Slots holds everything extracted from the conversation so far.
// The zero value of a field means "not provided".
type Slots struct {
	Location   string   `json:"location,omitempty"`
	Landmark   string   `json:"landmark,omitempty"`
	Material   string   `json:"material,omitempty"`
	Service    string   `json:"service,omitempty"`
	Collection string   `json:"collection,omitempty"`
	PriceMin   *float64 `json:"price_min,omitempty"`
	PriceMax   *float64 `json:"price_max,omitempty"`
	Expression string   `json:"expression,omitempty"`
}

// Merge applies in on top of s. A newly extracted value wins for its field,
// absent fields keep their previous value. Nothing is ever deleted here.
func (s *Slots) Merge(in Slots) {
	if in.Location != "" {
		s.Location = in.Location
	}
	if in.Landmark != "" {
		s.Landmark = in.Landmark
	}
	if in.Material != "" {
		s.Material = in.Material
	}
	if in.Service != "" {
		s.Service = in.Service
	}
	if in.Collection != "" {
		s.Collection = in.Collection
	}
	if in.PriceMin != nil {
		s.PriceMin = in.PriceMin
	}
	if in.PriceMax != nil {
		s.PriceMax = in.PriceMax
	}
	if in.Expression != "" {
		s.Expression = in.Expression
	}
}

// Clear drops every slot value. Only the ENDED transition may call this.
func (s *Slots) Clear() {
	*s = Slots{}
}

func (s Slots) IsZero() bool {
	return s == Slots{}
}

// Classification is the classifier's verdict for one message.
type Classification struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Slots      Slots   `json:"slots"`
}

type EntityKind string

const (
	EntityProduct EntityKind = "product"
	EntityOutlet  EntityKind = "outlet"
)

// Entity is one searchable catalog record. Product and outlet records share
// the struct; fields that do not apply stay at their zero value.
type Entity struct {
	Kind EntityKind `json:"kind"`
	Name string     `json:"name"`

	// Product fields
	Price      float64  `json:"price,omitempty"`
	Materials  []string `json:"materials,omitempty"`
	Features   []string `json:"features,omitempty"`
	Collection string   `json:"collection,omitempty"`

	// Outlet fields
	Address  string   `json:"address,omitempty"`
	City     string   `json:"city,omitempty"`
	Services []string `json:"services,omitempty"`
	Hours    string   `json:"hours,omitempty"`
}

// ScoredResult is one ranked catalog entity. Matched records the contribution
// of each scoring factor so rankings stay explainable and testable.
type ScoredResult struct {
	Entity  Entity             `json:"entity"`
	Score   float64            `json:"score"`
	Matched map[string]float64 `json:"matched,omitempty"`
}

// CalcResult is a successful arithmetic evaluation. Steps is populated for
// multi-operation expressions so replies can walk through tax/discount math.
type CalcResult struct {
	Expression string   `json:"expression"`
	Value      float64  `json:"value"`
	Steps      []string `json:"steps,omitempty"`
}

// ToolResult carries one tool invocation outcome. Error is a user-safe
// message, not a Go error; tool failures never abort the pipeline.
type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// AgentResponse is the structured reply for one handled message.
type AgentResponse struct {
	Reply       string         `json:"reply"`
	Intent      Intent         `json:"intent"`
	Confidence  float64        `json:"confidence"`
	Action      Action         `json:"action"`
	Matches     []ScoredResult `json:"matches,omitempty"`
	Calculation *CalcResult    `json:"calculation,omitempty"`
	Followups   []string       `json:"followups,omitempty"`
}
