package authRepository

const (
	queryCreateUser = `
		INSERT INTO users (
			id,
			email,
			name,
			password,
			company_name,
			profile_photo_url,
			is_verified,
			created_at,
			updated_at
		) VALUES (
			:id,
			:email,
			:name,
			:password,
			:company_name,
			:profile_photo_url,
			:is_verified,
			:created_at,
			:updated_at
		)
	`

	queryGetUserByID = `
		SELECT
			id,
			email,
			name,
			password,
			company_name,
			profile_photo_url,
			is_verified,
			created_at,
			updated_at
		FROM users
		WHERE id = :id
	`

	queryGetUserByEmail = `
		SELECT
			id,
			email,
			name,
			password,
			company_name,
			profile_photo_url,
			is_verified,
			created_at,
			updated_at
		FROM users
		WHERE email = :email
	`

	queryUpdateUser = `
		UPDATE users
		SET
			name = CASE WHEN :name = '' THEN name ELSE :name END,
			company_name = CASE WHEN :company_name = '' THEN company_name ELSE :company_name END,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryUpdatePassword = `
		UPDATE users
		SET
			password = :password,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryMarkVerified = `
		UPDATE users
		SET
			is_verified = TRUE,
			updated_at = :updated_at
		WHERE email = :email
	`

	queryUpdateProfilePhoto = `
		UPDATE users
		SET
			profile_photo_url = :profile_photo_url,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteUser = `
		DELETE FROM users
		WHERE id = :id
	`

	queryCountAdmins = `
		SELECT COUNT(id)
		FROM admins
	`

	queryCreateAdmin = `
		INSERT INTO admins (
			id,
			email,
			name,
			password,
			role,
			invite_token,
			is_active,
			created_at,
			updated_at
		) VALUES (
			:id,
			:email,
			:name,
			:password,
			:role,
			:invite_token,
			:is_active,
			:created_at,
			:updated_at
		)
	`

	queryGetAdminByEmail = `
		SELECT
			id,
			email,
			name,
			password,
			role,
			invite_token,
			is_active,
			created_at,
			updated_at
		FROM admins
		WHERE email = :email
	`

	queryGetAdminByInviteToken = `
		SELECT
			id,
			email,
			name,
			password,
			role,
			invite_token,
			is_active,
			created_at,
			updated_at
		FROM admins
		WHERE invite_token = :invite_token
	`

	queryActivateAdmin = `
		UPDATE admins
		SET
			password = :password,
			invite_token = NULL,
			is_active = TRUE,
			updated_at = :updated_at
		WHERE id = :id
	`
)
