package database

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm/schema"
)

func TestDocumentRecordColumnTypes(t *testing.T) {
	s, err := schema.Parse(&DocumentRecord{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	body := s.LookUpField("Body")
	require.NotNil(t, body)

	assert.Equal(t, "documents", s.Table)
	assert.Equal(t, "longtext", mysql.Dialector{Config: &mysql.Config{}}.DataTypeOf(body),
		"MySQL TEXT caps a document at 64 KiB")
	assert.Equal(t, "text", postgres.Dialector{Config: &postgres.Config{}}.DataTypeOf(body))
}
