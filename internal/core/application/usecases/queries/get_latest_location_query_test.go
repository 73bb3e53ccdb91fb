package queries_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetLatestLocationQuery_Valid(t *testing.T) {
	query, err := queries.NewGetLatestLocationQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetLatestLocationQuery_EmptyOrderID(t *testing.T) {
	_, err := queries.NewGetLatestLocationQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetLatestLocationQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetLatestLocationQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetLatestLocationQueryIsNotConstructed)
}
