package consts

const (
	ContentReactionCountKey = "content:reaction:count:"
	CommentReactionCountKey = "comment:reaction:count:"
)

const (
	SchedulePublishLock = "lock:schedule:publish"
	ReactionRecountLock = "lock:reaction:recount"
	ContentPurgeLock    = "lock:content:purge"
)
