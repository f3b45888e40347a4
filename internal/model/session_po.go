package model

import (
	"time"
)

// Sessions corresponds to the sessions table. One row per user tracking the current
// conversation step plus the JSON scratch payload of the in-progress flow.
// 会话落库而不是放内存, 进程重启后多轮转账流程不会丢失。
type Sessions struct {
	Id        int64  `gorm:"primaryKey"`
	UserId    int64  `gorm:"uniqueIndex;not null"`
	Step      string `gorm:"default:IDLE"`
	Data      string `gorm:"type:text;default:'{}'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
