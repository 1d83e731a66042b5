package models

// All lists every table owned by this service, in migration order.
func All() []interface{} {
	return []interface{}{
		&Badge{},
		&UserBadge{},
		&CourseProgress{},
		&ContentView{},
		&Notification{},
		&UserActivity{},
	}
}
