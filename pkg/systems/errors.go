package systems

import "errors"

// 放置引擎的错误
// 可预期的结果（空格子、资金不足、格子被占用）不使用错误，由布尔值或空操作表示
var (
	// ErrUnknownIdentifier 目录中没有该建筑定义
	ErrUnknownIdentifier = errors.New("unknown structure identifier")
	// ErrUniqueAlreadyBuilt 唯一建筑已经存在
	ErrUniqueAlreadyBuilt = errors.New("unique structure already built")
	// ErrDuplicateGuid 实例ID已被占用（存档损坏）
	ErrDuplicateGuid = errors.New("duplicate guid")
	// ErrInvalidRecord 存档记录缺少必要字段
	ErrInvalidRecord = errors.New("invalid placement record")
	// ErrMissingCollaborator 启动时缺少必需的协作者
	ErrMissingCollaborator = errors.New("missing collaborator")
	// ErrCellOccupied 占地范围内的格子已被占用
	ErrCellOccupied = errors.New("cell already occupied")
	// ErrOutOfBounds 占地范围超出类别边界
	ErrOutOfBounds = errors.New("footprint out of bounds")
	// ErrUnknownGuid 没有该实例ID对应的建筑
	ErrUnknownGuid = errors.New("unknown guid")
	// ErrUnknownCategory 没有该类别的占用表
	ErrUnknownCategory = errors.New("unknown category")
)
