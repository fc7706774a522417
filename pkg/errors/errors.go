package errors

import "errors"

// ErrOptimisticLock 并发冲突：记录正被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// ErrStore 存储层故障（不可达或读写失败），由调用方决定是否重试
var ErrStore = errors.New("存储服务不可用")
