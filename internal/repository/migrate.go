package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates every table owned by the repositories.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&designerProfileModel{},
		&designModel{},
		&bookingModel{},
		&paymentModel{},
		&notificationModel{},
		&messageModel{},
		&revokedTokenModel{},
	)
}
