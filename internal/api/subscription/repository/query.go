package subscriptionRepository

const (
	queryListPlans = `
		SELECT
			id,
			name,
			stripe_price_id,
			price_cents,
			chatbot_quota,
			message_quota,
			created_at
		FROM plans
		ORDER BY price_cents ASC
	`

	queryGetPlanByID = `
		SELECT
			id,
			name,
			stripe_price_id,
			price_cents,
			chatbot_quota,
			message_quota,
			created_at
		FROM plans
		WHERE id = :id
	`

	queryGetPlanByName = `
		SELECT
			id,
			name,
			stripe_price_id,
			price_cents,
			chatbot_quota,
			message_quota,
			created_at
		FROM plans
		WHERE name = :name
	`

	queryGetPlanByStripePriceID = `
		SELECT
			id,
			name,
			stripe_price_id,
			price_cents,
			chatbot_quota,
			message_quota,
			created_at
		FROM plans
		WHERE stripe_price_id = :stripe_price_id
	`

	queryGetSubscriptionByUser = `
		SELECT
			id,
			user_id,
			plan_id,
			stripe_customer_id,
			stripe_subscription_id,
			status,
			current_period_end,
			created_at,
			updated_at
		FROM subscriptions
		WHERE user_id = :user_id
	`

	queryGetSubscriptionByStripeID = `
		SELECT
			id,
			user_id,
			plan_id,
			stripe_customer_id,
			stripe_subscription_id,
			status,
			current_period_end,
			created_at,
			updated_at
		FROM subscriptions
		WHERE stripe_subscription_id = :stripe_subscription_id
	`

	queryUpsertSubscription = `
		INSERT INTO subscriptions (
			id,
			user_id,
			plan_id,
			stripe_customer_id,
			stripe_subscription_id,
			status,
			current_period_end,
			created_at,
			updated_at
		) VALUES (
			:id,
			:user_id,
			:plan_id,
			:stripe_customer_id,
			:stripe_subscription_id,
			:status,
			:current_period_end,
			:created_at,
			:updated_at
		)
		ON CONFLICT (user_id) DO UPDATE SET
			plan_id = EXCLUDED.plan_id,
			stripe_customer_id = EXCLUDED.stripe_customer_id,
			stripe_subscription_id = EXCLUDED.stripe_subscription_id,
			status = EXCLUDED.status,
			current_period_end = EXCLUDED.current_period_end,
			updated_at = EXCLUDED.updated_at
	`

	querySyncSubscription = `
		UPDATE subscriptions
		SET plan_id = :plan_id,
			status = :status,
			current_period_end = :current_period_end,
			updated_at = NOW()
		WHERE stripe_subscription_id = :stripe_subscription_id
	`

	queryUpdateSubscriptionStatus = `
		UPDATE subscriptions
		SET status = :status,
			updated_at = NOW()
		WHERE stripe_subscription_id = :stripe_subscription_id
	`
)
