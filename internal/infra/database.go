package infra

import (
	"fmt"

	"crmgas/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (partial unique indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations applies the schema. Also used by the integration test suite
// against a throwaway container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Cliente{},
		&model.Produto{},
		&model.Venda{},
		&model.MovimentoEstoque{},
		&model.Caixa{},
		&model.MovimentoCaixa{},
		&model.RegraLembrete{},
		&model.Mensagem{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Store-level backstop for the "one caixa aberto per operator" rule.
		// The open transaction already serializes via the usuario row lock;
		// this index keeps the invariant even if a future code path skips it.
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_caixas_aberto_por_usuario
		    ON caixas (usuario_id)
		    WHERE estado = 'aberto'`,
		// Stock may never be negative — reject at the store as well.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_produtos_estoque_nao_negativo') THEN
		    ALTER TABLE produtos ADD CONSTRAINT chk_produtos_estoque_nao_negativo CHECK (estoque >= 0);
		  END IF;
		END $$`,
		// Partial index for the reminder cron query (pendente messages only).
		`CREATE INDEX IF NOT EXISTS idx_mensagens_pendentes
		    ON mensagens (agendada_para)
		    WHERE status = 'pendente'`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
