package load

// Upsert statements keyed by each table's identity column. Full overwrite on
// conflict (not merge, not conditional): re-running a batch is a no-op and a
// changed attribute always reflects the incoming value.

const upsertCustomerSQL = `
INSERT INTO customers
	(customer_id, first_name, last_name, email, gender, age_range, country, signup_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (customer_id) DO UPDATE SET
	first_name = EXCLUDED.first_name,
	last_name = EXCLUDED.last_name,
	email = EXCLUDED.email,
	gender = EXCLUDED.gender,
	age_range = EXCLUDED.age_range,
	country = EXCLUDED.country,
	signup_date = EXCLUDED.signup_date`

const upsertProductSQL = `
INSERT INTO products
	(product_id, product_name, category, brand, color, size, catalog_price, cost_price)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (product_id) DO UPDATE SET
	product_name = EXCLUDED.product_name,
	category = EXCLUDED.category,
	brand = EXCLUDED.brand,
	color = EXCLUDED.color,
	size = EXCLUDED.size,
	catalog_price = EXCLUDED.catalog_price,
	cost_price = EXCLUDED.cost_price`

const upsertSaleSQL = `
INSERT INTO sales
	(sale_id, sale_date, customer_id, channel, channel_campaigns, total_amount)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (sale_id) DO UPDATE SET
	sale_date = EXCLUDED.sale_date,
	customer_id = EXCLUDED.customer_id,
	channel = EXCLUDED.channel,
	channel_campaigns = EXCLUDED.channel_campaigns,
	total_amount = EXCLUDED.total_amount`

const upsertSaleItemSQL = `
INSERT INTO sale_items
	(item_id, sale_id, product_id, quantity, unit_price, original_price,
	 discount_applied, discount_percent, item_total)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (item_id) DO UPDATE SET
	sale_id = EXCLUDED.sale_id,
	product_id = EXCLUDED.product_id,
	quantity = EXCLUDED.quantity,
	unit_price = EXCLUDED.unit_price,
	original_price = EXCLUDED.original_price,
	discount_applied = EXCLUDED.discount_applied,
	discount_percent = EXCLUDED.discount_percent,
	item_total = EXCLUDED.item_total`
