package response

// 错误提示文案
const (
	MsgDefaultError   = "An error occurred"
	MsgInvalidParam   = "输入数据有误"
	MsgNotFound       = "资源不存在"
	MsgServerError    = "服务器错误，请稍后重试"
	MsgTooManyRequest = "Too many requests"
)
