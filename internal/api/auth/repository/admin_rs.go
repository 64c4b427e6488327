package authRepository

import (
	"LulaiPlatform/internal/api/auth"
	"LulaiPlatform/internal/entity"
	contextPkg "LulaiPlatform/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type AdminDB struct {
	ID          sql.NullString `db:"id"`
	Email       sql.NullString `db:"email"`
	Name        sql.NullString `db:"name"`
	Password    sql.NullString `db:"password"`
	Role        sql.NullString `db:"role"`
	InviteToken sql.NullString `db:"invite_token"`
	IsActive    bool           `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r *adminsRepository) CountAdmins(ctx context.Context) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var count int
	if err := r.q.QueryRowxContext(ctx, r.q.Rebind(queryCountAdmins)).Scan(&count); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountAdmins execution err")
		return 0, err
	}

	return count, nil
}

func (r *adminsRepository) CreateAdmin(ctx context.Context, admin entity.Admin) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":           admin.ID,
		"email":        admin.Email,
		"name":         admin.Name,
		"password":     admin.Password,
		"role":         admin.Role,
		"invite_token": admin.InviteToken,
		"is_active":    admin.IsActive,
		"created_at":   admin.CreatedAt,
		"updated_at":   admin.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateAdmin, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateAdmin named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"email":      admin.Email,
			}).Warn("CreateAdmin duplicate email")
			return auth.ErrEmailAlreadyExists
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating admin")
		return err
	}

	return nil
}

func (r *adminsRepository) GetAdminByEmail(ctx context.Context, email string) (entity.Admin, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var admin AdminDB

	query, args, err := sqlx.Named(queryGetAdminByEmail, map[string]interface{}{"email": email})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAdminByEmail named query preparation err")
		return entity.Admin{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&admin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Admin{}, auth.ErrAdminNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAdminByEmail execution err")
		return entity.Admin{}, err
	}

	return r.makeAdmin(admin), nil
}

func (r *adminsRepository) GetAdminByInviteToken(ctx context.Context, token string) (entity.Admin, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var admin AdminDB

	query, args, err := sqlx.Named(queryGetAdminByInviteToken, map[string]interface{}{"invite_token": token})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAdminByInviteToken named query preparation err")
		return entity.Admin{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&admin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Admin{}, auth.ErrInvalidInviteToken
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAdminByInviteToken execution err")
		return entity.Admin{}, err
	}

	return r.makeAdmin(admin), nil
}

func (r *adminsRepository) ActivateAdmin(ctx context.Context, id string, hashedPassword string) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":         id,
		"password":   hashedPassword,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryActivateAdmin, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ActivateAdmin named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ActivateAdmin execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return auth.ErrAdminNotFound
	}

	return nil
}

func (r *adminsRepository) makeAdmin(admin AdminDB) entity.Admin {
	return entity.Admin{
		ID:          admin.ID.String,
		Email:       admin.Email.String,
		Name:        admin.Name.String,
		Password:    admin.Password,
		Role:        admin.Role.String,
		InviteToken: admin.InviteToken,
		IsActive:    admin.IsActive,
		CreatedAt:   admin.CreatedAt,
		UpdatedAt:   admin.UpdatedAt,
	}
}
