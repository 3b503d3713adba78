package gate

import (
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// The signal feed is cosmetic mock data for the gated view, not trading
// advice: pairs, direction, and confidence are randomized per request.

var signalPairs = []string{"EUR/USD", "GBP/USD", "USD/JPY", "AUD/USD", "USD/CHF", "XAU/USD"}

var signalTimeframes = []string{"1m", "3m", "5m"}

// signalBatchSize is how many signals one analysis run produces.
const signalBatchSize = 3

// Signal is one entry in the gated signals view.
type Signal struct {
	ID         string    `json:"id"`
	Pair       string    `json:"pair"`
	Direction  string    `json:"direction"`
	Timeframe  string    `json:"timeframe"`
	Confidence int       `json:"confidence"`
	CreatedAt  time.Time `json:"createdAt"`
}

// generateSignal produces one randomized signal with confidence in [58, 92].
func generateSignal() Signal {
	direction := "PUT"
	if rand.Float64() > 0.5 {
		direction = "CALL"
	}
	confidence := min(92, max(58, 60+int(rand.Float64()*35)))

	return Signal{
		ID:         uuid.NewString(),
		Pair:       signalPairs[rand.IntN(len(signalPairs))],
		Direction:  direction,
		Timeframe:  signalTimeframes[rand.IntN(len(signalTimeframes))],
		Confidence: confidence,
		CreatedAt:  time.Now().UTC(),
	}
}

// handleSignals returns a fresh analysis batch. Reachable only through the
// route guard.
func (h *Handler) handleSignals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	signals := make([]Signal, 0, signalBatchSize)
	for range signalBatchSize {
		signals = append(signals, generateSignal())
	}
	writeJSON(w, http.StatusOK, map[string]any{"signals": signals})
}
