package storage_test

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/nikolayk812/carrito/internal/port"
	"github.com/nikolayk812/carrito/internal/storage"
)

type postgresStorageSuite struct {
	suite.Suite

	storage port.CartStorage
	pool    *pgxpool.Pool
}

// entry point to run the tests in the suite
func TestPostgresStorageSuite(t *testing.T) {
	suite.Run(t, new(postgresStorageSuite))
}

// before all tests in the suite
func (suite *postgresStorageSuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.NoError(err)

	suite.storage, err = storage.NewPostgres(suite.pool)
	suite.NoError(err)
}

// after all tests in the suite
func (suite *postgresStorageSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *postgresStorageSuite) TestCartStorageContract() {
	runCartStorageTests(suite.T(), suite.storage)
}
