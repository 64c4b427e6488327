package interactionRepository

const (
	queryCreateConversation = `
		INSERT INTO conversations (
			id,
			chatbot_id,
			visitor_id,
			converted,
			created_at,
			updated_at
		) VALUES (
			:id,
			:chatbot_id,
			:visitor_id,
			FALSE,
			:created_at,
			:updated_at
		)
	`

	queryGetConversationByID = `
		SELECT
			id,
			chatbot_id,
			visitor_id,
			converted,
			conversion_value,
			created_at,
			updated_at
		FROM conversations
		WHERE id = :id
	`

	queryTouchConversation = `
		UPDATE conversations
		SET updated_at = :updated_at
		WHERE id = :id
	`

	queryCreateMessage = `
		INSERT INTO conversation_messages (
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
		) VALUES (
			:id,
			:conversation_id,
			:sender,
			:content,
			:matched,
			:is_ai,
			:is_general_ai,
			:response_id,
			:matched_triggers,
			:confidence_score,
			:audio_url,
			:response_time_ms,
			:created_at
		)
	`

	queryGetMessageByID = `
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
		WHERE id = :id
	`

	queryCreateFeedback = `
		INSERT INTO message_feedback (
			id,
			message_id,
			rating,
			comment,
			created_at
		) VALUES (
			:id,
			:message_id,
			:rating,
			:comment,
			:created_at
		)
	`

	queryCountBotMessagesForUserInMonth = `
		SELECT COUNT(*)
		FROM conversation_messages m
		JOIN conversations c ON c.id = m.conversation_id
		JOIN chatbots b ON b.id = c.chatbot_id
		WHERE b.user_id = :user_id
		  AND m.sender = 'bot'
		  AND m.created_at >= date_trunc('month', NOW())
	`
)
