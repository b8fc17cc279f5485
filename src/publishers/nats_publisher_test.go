package publishers

import (
	"sync"
	"testing"

	"fix-gateway/src/logger"
	"fix-gateway/src/models"
	"fix-gateway/src/serializers"

	"github.com/stretchr/testify/assert"
)

// -----------------------------------------------------------------------------

func newTestPublisher(prefix string) *NATSPublisher {
	config := &models.MNATSConfig{ClientID: "fix-gateway", SubjectPrefix: prefix}
	return NewNATSPublisher(config, logger.NewNopLogger(), &serializers.JSONSerializer{}).(*NATSPublisher)
}

// The connection event handlers run on the NATS client's own goroutines, so
// the connectivity flag is flipped and read concurrently.
func TestConnectivityFlagConcurrentFlips(t *testing.T) {
	np := newTestPublisher("")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				np.setConnected(j%2 == 0)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				np.IsConnected()
			}
		}()
	}
	wg.Wait()

	np.setConnected(true)
	assert.True(t, np.IsConnected())
	np.setConnected(false)
	assert.False(t, np.IsConnected())
}

func TestPublishRequiresConnection(t *testing.T) {
	np := newTestPublisher("")
	assert.Error(t, np.Publish("events.or.ROFX", []byte("{}")))
	assert.Error(t, np.PublishJetStream("events.or.ROFX", []byte("{}")))
}

func TestSubjectPrefix(t *testing.T) {
	assert.Equal(t, "rofex.events.or.ROFX", newTestPublisher("rofex").getSubject("events.or.ROFX"))
	assert.Equal(t, "events.or.ROFX", newTestPublisher("").getSubject("events.or.ROFX"))
}
