package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
//   - Similarity 错误：UNSUPPORTED_METRIC
//   - Ratings 错误：NOT_FOUND, UNAVAILABLE
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "UNSUPPORTED_METRIC"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "similarity", "ratings"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*DomainError)
	return ok
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	// 通用错误代码
	ErrorCodeNotFound          = "NOT_FOUND"           // 资源不存在
	ErrorCodeNotSupported      = "NOT_SUPPORTED"       // 操作不支持
	ErrorCodeUnavailable       = "UNAVAILABLE"         // 服务不可用
	ErrorCodeInvalidInput      = "INVALID_INPUT"       // 输入无效
	ErrorCodeUnsupportedMetric = "UNSUPPORTED_METRIC"  // 相似度度量不在支持集合内
)

// 模块名称常量
const (
	ModuleStore      = "store"      // 存储模块
	ModuleRatings    = "ratings"    // 评分数据模块
	ModuleSimilarity = "similarity" // 相似度模块
	ModuleRecall     = "recall"     // 召回模块
)

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotSupported
	}
	return false
}

// IsUnsupportedMetric 检查错误是否为 UNSUPPORTED_METRIC。
// 调用方传入 {"cosine","jaccard"} 之外的度量名时会得到此类错误，绝不静默回退。
func IsUnsupportedMetric(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnsupportedMetric
	}
	return false
}
