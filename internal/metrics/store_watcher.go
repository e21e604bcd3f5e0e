package metrics

import (
	"github.com/dealflow-labs/sponsorship-board/internal/agreement"
	"github.com/dealflow-labs/sponsorship-board/internal/board"
	"github.com/dealflow-labs/sponsorship-board/internal/store"
)

type AgreementsSource interface {
	Agreements() []agreement.Agreement
}

// StoreWatcher keeps the store collectors up to date. The column gauges ignore
// the filter criteria so they always describe the whole pipeline.
type StoreWatcher struct {
	source AgreementsSource
}

func NewStoreWatcher(source AgreementsSource) *StoreWatcher {
	return &StoreWatcher{
		source: source,
	}
}

func (w *StoreWatcher) Listen(e store.Event) {
	CollectStoreMutation(string(e.Kind))

	if !e.Kind.AffectsBoard() || e.Kind == store.EventCriteriaChanged {
		return
	}

	w.Refresh()
}

func (w *StoreWatcher) Refresh() {
	b := board.Project(w.source.Agreements(), board.Criteria{})
	for _, c := range b.Columns {
		CollectBoardColumn(c.ID, float64(c.Count))
	}
}
