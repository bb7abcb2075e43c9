package main

const schemaDDL = `
CREATE TABLE IF NOT EXISTS pharmacies (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	area            TEXT NOT NULL DEFAULT '',
	ca_bracket      TEXT NOT NULL DEFAULT '',
	employees_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS products (
	code_13_ref    TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	laboratory     TEXT NOT NULL DEFAULT '',
	universe       TEXT NOT NULL DEFAULT '',
	category       TEXT NOT NULL DEFAULT '',
	family         TEXT NOT NULL DEFAULT '',
	sub_family     TEXT NOT NULL DEFAULT '',
	range_name     TEXT NOT NULL DEFAULT '',
	current_stock  INTEGER NOT NULL DEFAULT 0,
	tva_percentage DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS orders (
	id          TEXT PRIMARY KEY,
	pharmacy_id TEXT NOT NULL REFERENCES pharmacies (id),
	sent_date   DATE NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_pharmacy_sent_date ON orders (pharmacy_id, sent_date);

CREATE TABLE IF NOT EXISTS order_lines (
	id                BIGSERIAL PRIMARY KEY,
	order_id          TEXT NOT NULL REFERENCES orders (id),
	product_code      TEXT NOT NULL REFERENCES products (code_13_ref),
	quantity          INTEGER NOT NULL DEFAULT 0,
	bonus_quantity    INTEGER NOT NULL DEFAULT 0,
	received_quantity INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_order_lines_order ON order_lines (order_id);
CREATE INDEX IF NOT EXISTS idx_order_lines_product ON order_lines (product_code);

CREATE TABLE IF NOT EXISTS inventory_snapshots (
	product_code           TEXT NOT NULL REFERENCES products (code_13_ref),
	date                   DATE NOT NULL,
	weighted_average_price DOUBLE PRECISION NOT NULL DEFAULT 0,
	price_with_tax         DOUBLE PRECISION NOT NULL DEFAULT 0,
	PRIMARY KEY (product_code, date)
);

CREATE TABLE IF NOT EXISTS sales (
	id                     BIGSERIAL PRIMARY KEY,
	pharmacy_id            TEXT NOT NULL REFERENCES pharmacies (id),
	product_code           TEXT NOT NULL REFERENCES products (code_13_ref),
	sale_date              DATE NOT NULL,
	quantity               INTEGER NOT NULL DEFAULT 0,
	price_with_tax         DOUBLE PRECISION NOT NULL DEFAULT 0,
	weighted_average_price DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_sales_pharmacy_date ON sales (pharmacy_id, sale_date);
CREATE INDEX IF NOT EXISTS idx_sales_product ON sales (product_code);
`
