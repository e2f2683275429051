package service

// ExportedJobGuard lets the service_test package reach the guard.
type ExportedJobGuard = jobGuard
