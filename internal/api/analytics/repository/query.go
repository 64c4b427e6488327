package analyticsRepository

const (
	queryOverview = `
		SELECT
			COUNT(DISTINCT c.id) AS total_conversations,
			COUNT(m.id) AS total_messages,
			COUNT(DISTINCT c.visitor_id) AS unique_visitors,
			COALESCE(SUM(CASE WHEN m.sender = 'bot' AND m.response_id IS NOT NULL THEN 1 ELSE 0 END), 0) AS successful_matches,
			COALESCE(SUM(CASE WHEN m.is_general_ai THEN 1 ELSE 0 END), 0) AS ai_fallbacks,
			COALESCE(AVG(f.rating), 0) AS avg_feedback_score,
			COUNT(DISTINCT CASE WHEN c.converted THEN c.id END) AS conversion_count,
			COALESCE(
				COUNT(DISTINCT CASE WHEN c.converted THEN c.id END)::float
					/ NULLIF(COUNT(DISTINCT c.id), 0)::float * 100,
				0
			) AS conversion_rate,
			(
				SELECT COALESCE(SUM(conversion_value), 0)
				FROM conversations
				WHERE chatbot_id = :chatbot_id
				  AND converted
				  AND created_at >= :from
				  AND created_at < :to
			) AS total_conversion_value
		FROM conversations c
		LEFT JOIN conversation_messages m ON m.conversation_id = c.id
		LEFT JOIN message_feedback f ON f.message_id = m.id
		WHERE c.chatbot_id = :chatbot_id
		  AND c.created_at >= :from
		  AND c.created_at < :to
	`

	queryAvgConversationLength = `
		SELECT COALESCE(AVG(message_count), 0)
		FROM (
			SELECT COUNT(*) AS message_count
			FROM conversation_messages
			WHERE conversation_id IN (
				SELECT id FROM conversations
				WHERE chatbot_id = :chatbot_id
				  AND created_at >= :from
				  AND created_at < :to
			)
			GROUP BY conversation_id
		) AS lengths
	`

	queryAvgResponseTimeMs = `
		SELECT COALESCE(AVG(m.response_time_ms), 0)
		FROM conversation_messages m
		JOIN conversations c ON c.id = m.conversation_id
		WHERE c.chatbot_id = :chatbot_id
		  AND m.sender = 'bot'
		  AND m.response_time_ms IS NOT NULL
		  AND c.created_at >= :from
		  AND c.created_at < :to
	`

	queryDailyMetrics = `
		SELECT
			DATE(c.created_at) AS date,
			COUNT(DISTINCT c.id) AS conversation_count,
			COUNT(m.id) AS message_count,
			COUNT(DISTINCT CASE WHEN c.converted THEN c.id END) AS conversion_count,
			COALESCE(
				COUNT(DISTINCT CASE WHEN c.converted THEN c.id END)::float
					/ NULLIF(COUNT(DISTINCT c.id), 0)::float * 100,
				0
			) AS conversion_rate
		FROM conversations c
		LEFT JOIN conversation_messages m ON m.conversation_id = c.id
		WHERE c.chatbot_id = :chatbot_id
		  AND c.created_at >= :from
		  AND c.created_at < :to
		GROUP BY DATE(c.created_at)
		ORDER BY date ASC
	`

	queryPopularTopics = `
		SELECT
			unnest(m.matched_triggers) AS trigger,
			COUNT(*) AS count
		FROM conversation_messages m
		JOIN conversations c ON c.id = m.conversation_id
		WHERE c.chatbot_id = :chatbot_id
		  AND c.created_at >= :from
		  AND c.created_at < :to
		  AND m.matched_triggers IS NOT NULL
		GROUP BY trigger
		ORDER BY count DESC
		LIMIT :limit
	`

	queryCountConversations = `
		SELECT COUNT(*)
		FROM conversations
		WHERE chatbot_id = :chatbot_id
		  AND created_at >= :from
		  AND created_at < :to
	`

	queryListConversations = `
		SELECT
			c.id,
			c.visitor_id,
			c.converted,
			c.conversion_value,
			c.created_at,
			c.updated_at,
			COUNT(m.id) AS message_count,
			COALESCE((
				SELECT content FROM conversation_messages
				WHERE conversation_id = c.id AND sender = 'user'
				ORDER BY created_at ASC, sender DESC LIMIT 1
			), '') AS first_message,
			COALESCE((
				SELECT content FROM conversation_messages
				WHERE conversation_id = c.id
				ORDER BY created_at DESC, sender ASC LIMIT 1
			), '') AS last_message
		FROM conversations c
		LEFT JOIN conversation_messages m ON m.conversation_id = c.id
		WHERE c.chatbot_id = :chatbot_id
		  AND c.created_at >= :from
		  AND c.created_at < :to
		GROUP BY c.id
		ORDER BY c.created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryGetConversation = `
		SELECT
			id,
			chatbot_id,
			visitor_id,
			converted,
			conversion_value,
			created_at,
			updated_at
		FROM conversations
		WHERE id = :conversation_id
	`

	queryListMessages = `
		SELECT
			id,
			conversation_id,
			sender,
			content,
			matched,
			is_ai,
			is_general_ai,
			response_id,
			matched_triggers,
			confidence_score,
			audio_url,
			response_time_ms,
			created_at
		FROM conversation_messages
		WHERE conversation_id = :conversation_id
		ORDER BY created_at ASC, sender DESC
	`

	queryListFeedback = `
		SELECT
			id,
			message_id,
			rating,
			comment,
			created_at
		FROM message_feedback
		WHERE message_id IN (
			SELECT id FROM conversation_messages
			WHERE conversation_id = :conversation_id
		)
		ORDER BY created_at DESC
	`

	queryMarkConversion = `
		UPDATE conversations
		SET converted = TRUE,
			conversion_value = :conversion_value,
			updated_at = NOW()
		WHERE id = :conversation_id
	`
)
