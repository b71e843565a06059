package setting

import "context"

// SettingRepository defines the interface for settings persistence
type SettingRepository interface {
	FindByGroup(ctx context.Context, group string) ([]Setting, error)
	FindAll(ctx context.Context) ([]Setting, error)
	Get(ctx context.Context, group, key string) (*Setting, error)
	// Upsert writes all settings in one transaction
	Upsert(ctx context.Context, settings []Setting) error
}
