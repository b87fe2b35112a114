//go:build integration

package mock

import (
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pocketledger/backend/internal/integration/persistence/model"
)

var (
	dbOnce sync.Once
	db     *Db
)

// Db is the shared in-memory ledger database used by every scenario.
type Db struct {
	DbConn *gorm.DB
	tables map[string]any
	// order lists tables parents first, so clearing walks it backwards.
	order []string
}

// NewDb opens and migrates the shared database on first use.
func NewDb() *Db {
	dbOnce.Do(func() {
		db = open()
	})
	return db
}

func open() *Db {
	conn, err := gorm.Open(sqlite.Open("file:pocketledger?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	sqlDB, err := conn.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := conn.AutoMigrate(model.All()...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	d := &Db{DbConn: conn, tables: map[string]any{}}
	for _, m := range model.All() {
		stmt := &gorm.Statement{DB: conn}
		if err := stmt.Parse(m); err != nil {
			panic(err)
		}
		d.tables[stmt.Schema.Table] = m
		d.order = append(d.order, stmt.Schema.Table)
	}
	return d
}

// ClearDB hard-deletes every row, children first.
func (d *Db) ClearDB() error {
	for i := len(d.order) - 1; i >= 0; i-- {
		table := d.order[i]
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().
			Delete(d.tables[table]).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// GetModel returns the model registered for table.
func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.tables[table]
	return m, ok
}

// Count returns the number of live rows in table.
func (d *Db) Count(table string, where map[string]any) (int64, error) {
	m, ok := d.GetModel(table)
	if !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var count int64
	query := d.DbConn.Model(m)
	if len(where) > 0 {
		query = query.Where(where)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
