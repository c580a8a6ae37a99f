package cron

import (
	"Campaigner/internal/job"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_RegisterJobs(t *testing.T) {
	postScoreJob := job.NewPostScoreJob(nil, 0)

	assert.NoError(t, NewCronManager("0 */5 * * * *", postScoreJob).RegisterJobs())
	// 引擎带秒字段，五段表达式不合法
	assert.Error(t, NewCronManager("*/5 * * * *", postScoreJob).RegisterJobs())
}
