package queries_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetLocationHistoryQuery_Valid(t *testing.T) {
	query, err := queries.NewGetLocationHistoryQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetLocationHistoryQuery_EmptyOrderID(t *testing.T) {
	_, err := queries.NewGetLocationHistoryQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetLocationHistoryQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetLocationHistoryQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetLocationHistoryQueryIsNotConstructed)
}
