package chatbotRepository

const (
	queryCreateChatbot = `
		INSERT INTO chatbots (
			id,
			user_id,
			name,
			description,
			industry,
			api_key,
			avatar_url,
			widget_theme,
			widget_greeting,
			voice_id,
			created_at,
			updated_at
		) VALUES (
			:id,
			:user_id,
			:name,
			:description,
			:industry,
			:api_key,
			:avatar_url,
			:widget_theme,
			:widget_greeting,
			:voice_id,
			:created_at,
			:updated_at
		)
	`

	queryGetChatbotByID = `
		SELECT
			id,
			user_id,
			name,
			description,
			industry,
			api_key,
			avatar_url,
			widget_theme,
			widget_greeting,
			voice_id,
			created_at,
			updated_at
		FROM chatbots
		WHERE id = :id
	`

	queryGetChatbotByAPIKey = `
		SELECT
			id,
			user_id,
			name,
			description,
			industry,
			api_key,
			avatar_url,
			widget_theme,
			widget_greeting,
			voice_id,
			created_at,
			updated_at
		FROM chatbots
		WHERE api_key = :api_key
	`

	queryListChatbotsByUser = `
		SELECT
			id,
			user_id,
			name,
			description,
			industry,
			api_key,
			avatar_url,
			widget_theme,
			widget_greeting,
			voice_id,
			created_at,
			updated_at
		FROM chatbots
		WHERE user_id = :user_id
		ORDER BY created_at DESC
	`

	queryCountChatbotsByUser = `
		SELECT COUNT(*)
		FROM chatbots
		WHERE user_id = :user_id
	`

	queryUpdateChatbot = `
		UPDATE chatbots
		SET
			name = CASE WHEN :name = '' THEN name ELSE :name END,
			description = CASE WHEN :description = '' THEN description ELSE :description END,
			industry = CASE WHEN :industry = '' THEN industry ELSE :industry END,
			widget_theme = CASE WHEN :widget_theme = '' THEN widget_theme ELSE :widget_theme END,
			widget_greeting = CASE WHEN :widget_greeting = '' THEN widget_greeting ELSE :widget_greeting END,
			voice_id = CASE WHEN :voice_id = '' THEN voice_id ELSE :voice_id END,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryUpdateChatbotAPIKey = `
		UPDATE chatbots
		SET
			api_key = :api_key,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryUpdateChatbotAvatar = `
		UPDATE chatbots
		SET
			avatar_url = :avatar_url,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteChatbot = `
		DELETE FROM chatbots
		WHERE id = :id
	`

	queryCreateRule = `
		INSERT INTO trigger_rules (
			id,
			chatbot_id,
			trigger,
			response,
			is_ai,
			is_ai_enhanced,
			position,
			created_at,
			updated_at
		) VALUES (
			:id,
			:chatbot_id,
			:trigger,
			:response,
			:is_ai,
			:is_ai_enhanced,
			:position,
			:created_at,
			:updated_at
		)
	`

	queryGetRuleByID = `
		SELECT
			id,
			chatbot_id,
			trigger,
			response,
			is_ai,
			is_ai_enhanced,
			position,
			created_at,
			updated_at
		FROM trigger_rules
		WHERE id = :id
	`

	queryListRulesByChatbot = `
		SELECT
			id,
			chatbot_id,
			trigger,
			response,
			is_ai,
			is_ai_enhanced,
			position,
			created_at,
			updated_at
		FROM trigger_rules
		WHERE chatbot_id = :chatbot_id
		ORDER BY position ASC
	`

	queryNextRulePosition = `
		SELECT COALESCE(MAX(position), 0) + 1
		FROM trigger_rules
		WHERE chatbot_id = :chatbot_id
	`

	queryUpdateRule = `
		UPDATE trigger_rules
		SET
			trigger = CASE WHEN :trigger = '' THEN trigger ELSE :trigger END,
			response = CASE WHEN :response = '' THEN response ELSE :response END,
			is_ai = :is_ai,
			updated_at = :updated_at
		WHERE id = :id
	`

	querySetRulePosition = `
		UPDATE trigger_rules
		SET
			position = :position,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryMarkRuleAIEnhanced = `
		UPDATE trigger_rules
		SET
			response = :response,
			is_ai_enhanced = TRUE,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteRule = `
		DELETE FROM trigger_rules
		WHERE id = :id
	`

	queryListTemplates = `
		SELECT
			t.id,
			t.industry,
			t.name,
			t.description,
			t.created_at,
			COUNT(tr.id) AS rule_count
		FROM industry_templates t
		LEFT JOIN template_rules tr ON tr.template_id = t.id
		GROUP BY t.id, t.industry, t.name, t.description, t.created_at
		ORDER BY t.industry ASC, t.name ASC
	`

	queryGetTemplateByID = `
		SELECT
			id,
			industry,
			name,
			description,
			created_at
		FROM industry_templates
		WHERE id = :id
	`

	queryListTemplateRules = `
		SELECT
			id,
			template_id,
			trigger,
			response,
			position
		FROM template_rules
		WHERE template_id = :template_id
		ORDER BY position ASC
	`
)
