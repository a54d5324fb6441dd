package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_RequiresURIAndDatabase(t *testing.T) {
	for _, cfg := range []Config{
		{},
		{URI: "mongodb://localhost:27017"},
		{Database: "mavera_backoffice"},
	} {
		client, db, err := Connect(context.Background(), cfg)
		require.Error(t, err, "%+v", cfg)
		assert.Nil(t, client)
		assert.Nil(t, db)
	}
}

func TestDisconnect_NilClient(t *testing.T) {
	assert.NoError(t, Disconnect(nil, 0))
}
