package notification

import "designmarket/internal/pkg/apperr"

var ErrNotificationNotFound = apperr.New(apperr.ErrNotFound, "NOTIFICATION_NOT_FOUND", "Notification not found")
