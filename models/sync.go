package models

import "time"

// CycleState names a step of the sync state machine.
type CycleState string

const (
	StateIdle          CycleState = "idle"
	StateFetching      CycleState = "fetching"
	StateFetchedOK     CycleState = "fetched_ok"
	StateFetchFailed   CycleState = "fetch_failed"
	StateCacheHit      CycleState = "cache_hit"
	StateCacheMiss     CycleState = "cache_miss"
	StateDecrypting    CycleState = "decrypting"
	StateDecryptFailed CycleState = "decrypt_failed"
	StateMergedOK      CycleState = "merged_ok"
)

// CycleTrigger records why a sync cycle ran.
type CycleTrigger string

const (
	TriggerStartup  CycleTrigger = "startup"
	TriggerSchedule CycleTrigger = "schedule"
	TriggerPush     CycleTrigger = "push"
	TriggerManual   CycleTrigger = "manual"
)

// BundleSource tells where the bundle of the last successful cycle came from.
type BundleSource string

const (
	SourceRemote BundleSource = "remote"
	SourceCache  BundleSource = "cache"
)

// RefreshStatus is a point-in-time view of the orchestrator's refresh state.
// It never contains setting values.
type RefreshStatus struct {
	AppID         string       `json:"app_id"`
	State         CycleState   `json:"state"`
	LastTrigger   CycleTrigger `json:"last_trigger,omitempty"`
	LastSuccessAt time.Time    `json:"last_success_at,omitempty"`
	LastSource    BundleSource `json:"last_source,omitempty"`
	LastETag      string       `json:"last_etag,omitempty"`
	LastError     string       `json:"last_error,omitempty"`
	Cycles        int64        `json:"cycles"`
	Failures      int64        `json:"failures"`
	SettingsCount int          `json:"settings_count"`
	Subscribed    bool         `json:"push_subscribed"`
}
