package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing seed CSV files",
		Value:   "./data/seeds",
		EnvVars: []string{"SEED_DATA_DIR"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with pharmacy sell-in data",
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Create the database schema",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runSchema,
			},
			{
				Name:   "master",
				Usage:  "Seed master data (pharmacies, products)",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: runMaster,
			},
			{
				Name:   "transactions",
				Usage:  "Seed transactional data (orders, order lines, snapshots, sales)",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: runTransactions,
			},
			{
				Name:  "all",
				Usage: "Create the schema then seed everything",
				Flags: []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: func(c *cli.Context) error {
					if err := runSchema(c); err != nil {
						return fmt.Errorf("error creating schema: %w", err)
					}
					if err := runMaster(c); err != nil {
						return fmt.Errorf("error seeding master data: %w", err)
					}
					if err := runTransactions(c); err != nil {
						return fmt.Errorf("error seeding transactions: %w", err)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDB(c *cli.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func runSchema(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Println("Creating schema...")
	if _, err := db.ExecContext(context.Background(), schemaDDL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	log.Println("Schema created successfully!")
	return nil
}

func runMaster(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	dataDir := c.String("data-dir")
	log.Println("Seeding master data...")

	if err := seedPharmacies(ctx, tx, filepath.Join(dataDir, "pharmacies.csv")); err != nil {
		return fmt.Errorf("failed to seed pharmacies: %w", err)
	}
	if err := seedProducts(ctx, tx, filepath.Join(dataDir, "products.csv")); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	log.Println("Master data seeding completed successfully!")
	return nil
}

func runTransactions(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	dataDir := c.String("data-dir")
	log.Println("Seeding transactional data...")

	if err := seedOrders(ctx, tx, filepath.Join(dataDir, "orders.csv")); err != nil {
		return fmt.Errorf("failed to seed orders: %w", err)
	}
	if err := seedOrderLines(ctx, tx, filepath.Join(dataDir, "order_lines.csv")); err != nil {
		return fmt.Errorf("failed to seed order lines: %w", err)
	}
	if err := seedSnapshots(ctx, tx, filepath.Join(dataDir, "inventory_snapshots.csv")); err != nil {
		return fmt.Errorf("failed to seed inventory snapshots: %w", err)
	}
	if err := seedSales(ctx, tx, filepath.Join(dataDir, "sales.csv")); err != nil {
		return fmt.Errorf("failed to seed sales: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	log.Println("Transactional data seeding completed successfully!")
	return nil
}

func seedPharmacies(ctx context.Context, tx *sql.Tx, filePath string) error {
	query := `
		INSERT INTO pharmacies (id, name, area, ca_bracket, employees_count)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			area = EXCLUDED.area,
			ca_bracket = EXCLUDED.ca_bracket,
			employees_count = EXCLUDED.employees_count
	`
	return seedFromCSV(ctx, tx, "pharmacies", filePath, query, func(row rowReader) ([]interface{}, error) {
		return []interface{}{
			row.str("id"),
			row.str("name"),
			row.str("area"),
			row.str("ca_bracket"),
			row.intVal("employees_count"),
		}, row.err()
	})
}

func seedProducts(ctx context.Context, tx *sql.Tx, filePath string) error {
	query := `
		INSERT INTO products (code_13_ref, name, laboratory, universe, category,
			family, sub_family, range_name, current_stock, tva_percentage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (code_13_ref) DO UPDATE SET
			name = EXCLUDED.name,
			laboratory = EXCLUDED.laboratory,
			universe = EXCLUDED.universe,
			category = EXCLUDED.category,
			family = EXCLUDED.family,
			sub_family = EXCLUDED.sub_family,
			range_name = EXCLUDED.range_name,
			current_stock = EXCLUDED.current_stock,
			tva_percentage = EXCLUDED.tva_percentage
	`
	return seedFromCSV(ctx, tx, "products", filePath, query, func(row rowReader) ([]interface{}, error) {
		return []interface{}{
			row.str("code_13_ref"),
			row.str("name"),
			row.str("laboratory"),
			row.str("universe"),
			row.str("category"),
			row.str("family"),
			row.str("sub_family"),
			row.str("range_name"),
			row.intVal("current_stock"),
			row.floatVal("tva_percentage"),
		}, row.err()
	})
}

func seedOrders(ctx context.Context, tx *sql.Tx, filePath string) error {
	query := `
		INSERT INTO orders (id, pharmacy_id, sent_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			pharmacy_id = EXCLUDED.pharmacy_id,
			sent_date = EXCLUDED.sent_date
	`
	return seedFromCSV(ctx, tx, "orders", filePath, query, func(row rowReader) ([]interface{}, error) {
		return []interface{}{
			row.str("id"),
			row.str("pharmacy_id"),
			row.str("sent_date"),
		}, row.err()
	})
}

func seedOrderLines(ctx context.Context, tx *sql.Tx, filePath string) error {
	query := `
		INSERT INTO order_lines (order_id, product_code, quantity, bonus_quantity, received_quantity)
		VALUES ($1, $2, $3, $4, $5)
	`
	return seedFromCSV(ctx, tx, "order_lines", filePath, query, func(row rowReader) ([]interface{}, error) {
		return []interface{}{
			row.str("order_id"),
			row.str("product_code"),
			row.intVal("quantity"),
			row.intVal("bonus_quantity"),
			row.intVal("received_quantity"),
		}, row.err()
	})
}

func seedSnapshots(ctx context.Context, tx *sql.Tx, filePath string) error {
	query := `
		INSERT INTO inventory_snapshots (product_code, date, weighted_average_price, price_with_tax)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_code, date) DO UPDATE SET
			weighted_average_price = EXCLUDED.weighted_average_price,
			price_with_tax = EXCLUDED.price_with_tax
	`
	return seedFromCSV(ctx, tx, "inventory_snapshots", filePath, query, func(row rowReader) ([]interface{}, error) {
		return []interface{}{
			row.str("product_code"),
			row.str("date"),
			row.floatVal("weighted_average_price"),
			row.floatVal("price_with_tax"),
		}, row.err()
	})
}

func seedSales(ctx context.Context, tx *sql.Tx, filePath string) error {
	query := `
		INSERT INTO sales (pharmacy_id, product_code, sale_date, quantity, price_with_tax, weighted_average_price)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	return seedFromCSV(ctx, tx, "sales", filePath, query, func(row rowReader) ([]interface{}, error) {
		return []interface{}{
			row.str("pharmacy_id"),
			row.str("product_code"),
			row.str("sale_date"),
			row.intVal("quantity"),
			row.floatVal("price_with_tax"),
			row.floatVal("weighted_average_price"),
		}, row.err()
	})
}

// rowReader resolves CSV values by header name and accumulates the first
// parse failure instead of failing per-field
type rowReader struct {
	header   map[string]int
	record   []string
	firstErr *error
}

func (r rowReader) str(column string) string {
	idx, ok := r.header[column]
	if !ok || idx >= len(r.record) {
		*r.firstErr = fmt.Errorf("missing column %q", column)
		return ""
	}
	return strings.TrimSpace(r.record[idx])
}

func (r rowReader) intVal(column string) int {
	raw := r.str(column)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil && *r.firstErr == nil {
		*r.firstErr = fmt.Errorf("invalid integer %q in column %q", raw, column)
	}
	return v
}

func (r rowReader) floatVal(column string) float64 {
	raw := r.str(column)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil && *r.firstErr == nil {
		*r.firstErr = fmt.Errorf("invalid number %q in column %q", raw, column)
	}
	return v
}

func (r rowReader) err() error {
	return *r.firstErr
}

func seedFromCSV(ctx context.Context, tx *sql.Tx, tableName, filePath, query string, convert func(rowReader) ([]interface{}, error)) error {
	log.Printf("Seeding %s from %s\n", tableName, filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rawHeader, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	header := make(map[string]int, len(rawHeader))
	for i, name := range rawHeader {
		header[strings.TrimSpace(strings.ToLower(name))] = i
	}

	rows := 0
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		var parseErr error
		args, err := convert(rowReader{header: header, record: record, firstErr: &parseErr})
		if err != nil {
			return fmt.Errorf("row %d: %w", rows+2, err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert record into %s: %w", tableName, err)
		}
		rows++
	}

	log.Printf("Successfully seeded %s (%d rows)\n", tableName, rows)
	return nil
}
