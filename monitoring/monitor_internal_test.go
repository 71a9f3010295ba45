package monitoring

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/netsim/sim"
)

func httpGet(server *httptest.Server, path string) (int, string) {
	rsp, err := http.Get(server.URL + path)
	Expect(err).ToNot(HaveOccurred())
	defer rsp.Body.Close()

	body, err := io.ReadAll(rsp.Body)
	Expect(err).ToNot(HaveOccurred())

	return rsp.StatusCode, string(body)
}

var _ = Describe("Monitor", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *MockEngine
		m        *Monitor
		server   *httptest.Server
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewMockEngine(mockCtrl)

		m = NewMonitor()
		m.RegisterEngine(engine)

		server = httptest.NewServer(m.router())
	})

	AfterEach(func() {
		server.Close()
		mockCtrl.Finish()
	})

	It("should register the engine", func() {
		Expect(m.engine).To(BeIdenticalTo(engine))
	})

	It("should report the current time", func() {
		engine.EXPECT().CurrentTime().Return(sim.VTime(42))

		status, body := httpGet(server, "/api/now")

		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(Equal(`{"now":42}`))
	})

	It("should report the engine status", func() {
		engine.EXPECT().CurrentTime().Return(sim.VTime(3))
		engine.EXPECT().EventCount().Return(uint64(7))
		engine.EXPECT().QueueSize().Return(2)
		engine.EXPECT().IsFinished().Return(false)
		engine.EXPECT().SystemID().Return(uint32(0))

		status, body := httpGet(server, "/api/status")

		Expect(status).To(Equal(http.StatusOK))

		var rsp statusRsp
		Expect(json.Unmarshal([]byte(body), &rsp)).To(Succeed())
		Expect(rsp.Now).To(Equal(sim.VTime(3)))
		Expect(rsp.EventCount).To(Equal(uint64(7)))
		Expect(rsp.QueueSize).To(Equal(2))
		Expect(rsp.Finished).To(BeFalse())
	})

	It("should pause and continue the engine", func() {
		engine.EXPECT().Pause()
		engine.EXPECT().Continue()

		status, _ := httpGet(server, "/api/pause")
		Expect(status).To(Equal(http.StatusOK))

		status, _ = httpGet(server, "/api/continue")
		Expect(status).To(Equal(http.StatusOK))
	})

	It("should stop the engine", func() {
		engine.EXPECT().Stop()

		status, _ := httpGet(server, "/api/stop")
		Expect(status).To(Equal(http.StatusOK))
	})

	It("should start a run in the background", func() {
		done := make(chan struct{})
		engine.EXPECT().Run().DoAndReturn(func() error {
			close(done)
			return nil
		})

		status, _ := httpGet(server, "/api/run")

		Expect(status).To(Equal(http.StatusOK))
		Eventually(done).Should(BeClosed())
	})

	It("should serve progress bars", func() {
		bar := m.CreateProgressBar("transfers", 100)
		bar.IncrementFinished(25)

		_, body := httpGet(server, "/api/progress")

		var bars []*ProgressBar
		Expect(json.Unmarshal([]byte(body), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("transfers"))
		Expect(bars[0].Total).To(Equal(uint64(100)))
		Expect(bars[0].Finished).To(Equal(uint64(25)))

		m.CompleteProgressBar(bar)

		_, body = httpGet(server, "/api/progress")
		Expect(body).To(Equal("[]"))
	})

	It("should report process resources", func() {
		status, body := httpGet(server, "/api/resource")

		Expect(status).To(Equal(http.StatusOK))

		var rsp resourceRsp
		Expect(json.Unmarshal([]byte(body), &rsp)).To(Succeed())
		Expect(rsp.MemorySize).To(BeNumerically(">", 0))
	})

	It("should list the endpoints at the root", func() {
		status, body := httpGet(server, "/")

		Expect(status).To(Equal(http.StatusOK))

		var endpoints []string
		Expect(json.Unmarshal([]byte(body), &endpoints)).To(Succeed())
		Expect(endpoints).To(ContainElement("/api/status"))
	})
})
