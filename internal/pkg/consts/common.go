package consts

const (
	MimePrefixImage = "image"
	MimePrefixVideo = "video"
	MimePrefixFile  = "file"
)

const (
	ReactionCountCacheTTLDays = 7
)
