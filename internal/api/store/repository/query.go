package storeRepository

const (
	queryCreateProduct = `
		INSERT INTO products (
			id,
			name,
			description,
			price_cents,
			image_url,
			image_alt_text,
			stock,
			is_active,
			created_at,
			updated_at
		) VALUES (
			:id,
			:name,
			:description,
			:price_cents,
			:image_url,
			:image_alt_text,
			:stock,
			:is_active,
			:created_at,
			:updated_at
		)
	`

	queryGetProductByID = `
		SELECT
			id,
			name,
			description,
			price_cents,
			image_url,
			image_alt_text,
			stock,
			is_active,
			created_at,
			updated_at
		FROM products
		WHERE id = :id
	`

	queryListProducts = `
		SELECT
			id,
			name,
			description,
			price_cents,
			image_url,
			image_alt_text,
			stock,
			is_active,
			created_at,
			updated_at
		FROM products
		WHERE (:active_only = FALSE OR is_active = TRUE)
		ORDER BY created_at DESC
	`

	queryUpdateProduct = `
		UPDATE products
		SET name = CASE WHEN :name = '' THEN name ELSE :name END,
			description = CASE WHEN :description = '' THEN description ELSE :description END,
			price_cents = CASE WHEN :price_cents = 0 THEN price_cents ELSE :price_cents END,
			stock = :stock,
			is_active = :is_active,
			updated_at = NOW()
		WHERE id = :id
	`

	queryUpdateProductImage = `
		UPDATE products
		SET image_url = :image_url,
			image_alt_text = :image_alt_text,
			updated_at = NOW()
		WHERE id = :id
	`

	queryAdjustStock = `
		UPDATE products
		SET stock = stock + :delta,
			updated_at = NOW()
		WHERE id = :id
		  AND stock + :delta >= 0
	`

	queryDeleteProduct = `
		DELETE FROM products
		WHERE id = :id
	`

	queryUpsertCartItem = `
		INSERT INTO cart_items (
			id,
			session_id,
			product_id,
			quantity,
			created_at,
			updated_at
		) VALUES (
			:id,
			:session_id,
			:product_id,
			:quantity,
			:created_at,
			:updated_at
		)
		ON CONFLICT (session_id, product_id) DO UPDATE SET
			quantity = cart_items.quantity + EXCLUDED.quantity,
			updated_at = EXCLUDED.updated_at
	`

	queryGetCartItemByID = `
		SELECT
			id,
			session_id,
			product_id,
			quantity,
			created_at,
			updated_at
		FROM cart_items
		WHERE id = :id
	`

	queryListCartItems = `
		SELECT
			id,
			session_id,
			product_id,
			quantity,
			created_at,
			updated_at
		FROM cart_items
		WHERE session_id = :session_id
		ORDER BY created_at ASC
	`

	querySetCartItemQuantity = `
		UPDATE cart_items
		SET quantity = :quantity,
			updated_at = NOW()
		WHERE id = :id
	`

	queryDeleteCartItem = `
		DELETE FROM cart_items
		WHERE id = :id
	`

	queryClearCart = `
		DELETE FROM cart_items
		WHERE session_id = :session_id
	`

	queryCreateOrder = `
		INSERT INTO orders (
			id,
			session_id,
			email,
			status,
			total_cents,
			stripe_payment_intent_id,
			conversation_id,
			created_at,
			updated_at
		) VALUES (
			:id,
			:session_id,
			:email,
			:status,
			:total_cents,
			:stripe_payment_intent_id,
			:conversation_id,
			:created_at,
			:updated_at
		)
	`

	queryCreateOrderItem = `
		INSERT INTO order_items (
			id,
			order_id,
			product_id,
			product_name,
			price_cents,
			quantity
		) VALUES (
			:id,
			:order_id,
			:product_id,
			:product_name,
			:price_cents,
			:quantity
		)
	`

	queryGetOrderByID = `
		SELECT
			id,
			session_id,
			email,
			status,
			total_cents,
			stripe_payment_intent_id,
			conversation_id,
			created_at,
			updated_at
		FROM orders
		WHERE id = :id
	`

	queryGetOrderByPaymentIntent = `
		SELECT
			id,
			session_id,
			email,
			status,
			total_cents,
			stripe_payment_intent_id,
			conversation_id,
			created_at,
			updated_at
		FROM orders
		WHERE stripe_payment_intent_id = :stripe_payment_intent_id
	`

	queryListOrdersBySession = `
		SELECT
			id,
			session_id,
			email,
			status,
			total_cents,
			stripe_payment_intent_id,
			conversation_id,
			created_at,
			updated_at
		FROM orders
		WHERE session_id = :session_id
		ORDER BY created_at DESC
	`

	queryListOrderItems = `
		SELECT
			id,
			order_id,
			product_id,
			product_name,
			price_cents,
			quantity
		FROM order_items
		WHERE order_id = :order_id
	`

	queryUpdateOrderStatus = `
		UPDATE orders
		SET status = :status,
			updated_at = NOW()
		WHERE id = :id
	`
)
