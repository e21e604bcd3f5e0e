package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dealflow-labs/sponsorship-board/internal/agreement"
	"github.com/dealflow-labs/sponsorship-board/internal/board"
	"github.com/dealflow-labs/sponsorship-board/internal/config"
)

func TestUnitRenderBoard(t *testing.T) {
	st, err := loadStore(context.Background(), "../../fixtures/demo.yaml")
	require.NoError(t, err)

	var out bytes.Buffer
	renderBoard(&out, board.Project(st.Agreements(), board.Criteria{
		Priorities: []agreement.Priority{agreement.PriorityHigh},
	}))

	rendered := out.String()
	require.Contains(t, rendered, "2 agreements")
	require.Contains(t, rendered, "En Negociación")
	require.Contains(t, rendered, "TechCorp Solutions")
	require.Contains(t, rendered, "7500.00 EUR")
	require.NotContains(t, rendered, "Fashion Brand SL")
}

func TestUnitSetupLogger(t *testing.T) {
	require.NoError(t, setupLogger(config.Log{Level: "debug", Format: "console"}))
	require.Error(t, setupLogger(config.Log{Level: "loud", Format: "json"}))
}
