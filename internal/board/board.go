package board

import (
	"github.com/rs/zerolog/log"

	"github.com/dealflow-labs/sponsorship-board/internal/agreement"
)

var titles = map[agreement.Status]string{
	agreement.StatusProspects:       "Prospectos",
	agreement.StatusNegotiation:     "En Negociación",
	agreement.StatusContractSent:    "Contrato Enviado",
	agreement.StatusContractSigned:  "Contrato Firmado",
	agreement.StatusInProduction:    "En Producción",
	agreement.StatusVideoPublished:  "Video Publicado",
	agreement.StatusPaymentPending:  "Pago Pendiente",
	agreement.StatusPaymentReceived: "Pago Recibido",
	agreement.StatusCompleted:       "Completado",
}

type Column struct {
	ID         string                `json:"id"`
	Title      string                `json:"title"`
	Status     agreement.Status      `json:"status"`
	Agreements []agreement.Agreement `json:"agreements"`
	Count      int                   `json:"count"`
}

type Board struct {
	Columns []Column `json:"columns"`
}

// Total is the number of agreements that passed the filters.
func (b Board) Total() int {
	total := 0
	for _, c := range b.Columns {
		total += c.Count
	}

	return total
}

func (b Board) Column(status agreement.Status) (Column, bool) {
	for _, c := range b.Columns {
		if c.Status == status {
			return c, true
		}
	}

	return Column{}, false
}

// Title returns the display label of the column holding the status.
func Title(status agreement.Status) string {
	if t, ok := titles[status]; ok {
		return t
	}

	return string(status)
}

// Project filters the agreements and partitions them into the nine pipeline
// columns. Every column is present, and members keep their source order.
// Agreements whose status is outside the pipeline have no column: they are
// logged and left out of the board, while the store keeps them untouched.
func Project(list []agreement.Agreement, criteria Criteria) Board {
	filtered := Apply(list, criteria.Filters())

	statuses := agreement.Pipeline()
	index := make(map[agreement.Status]int, len(statuses))
	columns := make([]Column, len(statuses))
	for i, s := range statuses {
		index[s] = i
		columns[i] = Column{
			ID:         string(s),
			Title:      Title(s),
			Status:     s,
			Agreements: []agreement.Agreement{},
		}
	}

	for _, a := range filtered {
		i, ok := index[a.Status]
		if !ok {
			log.Warn().
				Str("id", a.ID).
				Str("status", string(a.Status)).
				Msg("agreement status has no board column")

			continue
		}

		columns[i].Agreements = append(columns[i].Agreements, a)
	}

	for i := range columns {
		columns[i].Count = len(columns[i].Agreements)
	}

	return Board{Columns: columns}
}
