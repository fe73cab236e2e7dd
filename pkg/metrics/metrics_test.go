package metrics_test

import (
	"os"
	"path/filepath"

	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	dto "github.com/prometheus/client_model/go"

	"github.com/dwcj/installer/pkg/metrics"
)

func find(families []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}

var _ = Describe("metrics", func() {
	It("noop does nothing", func() {
		var m metrics.Metrics = metrics.Noop{}
		m.ObserveStage("Staged", metrics.RESULT_SUCCESS, 1)
		m.IncInstallations(metrics.RESULT_SUCCESS)
		m.IncExtractedResources(2)
	})

	It("records installation metrics", func() {
		m := metrics.NewProm("dwcj")
		m.ObserveStage("Staged", metrics.RESULT_SUCCESS, 0.2)
		m.ObserveStage("DependenciesResolved", metrics.RESULT_FAILURE, 12)
		m.IncInstallations(metrics.RESULT_FAILURE)
		m.IncExtractedResources(2)

		families := Must(m.Registry().Gather())
		stages := find(families, "dwcj_stage_duration_seconds")
		Expect(stages).NotTo(BeNil())
		Expect(stages.GetMetric()).To(HaveLen(2))

		runs := find(families, "dwcj_installations_total")
		Expect(runs).NotTo(BeNil())
		Expect(runs.GetMetric()[0].GetCounter().GetValue()).To(Equal(1.0))
		Expect(runs.GetMetric()[0].GetLabel()[0].GetValue()).To(Equal(metrics.RESULT_FAILURE))

		res := find(families, "dwcj_extracted_resources_total")
		Expect(res.GetMetric()[0].GetCounter().GetValue()).To(Equal(2.0))
	})

	It("writes text files", func() {
		dir := GinkgoT().TempDir()
		m := metrics.NewProm("dwcj")
		m.IncInstallations(metrics.RESULT_SUCCESS)
		path := filepath.Join(dir, "dwcj.prom")
		MustBeSuccessful(m.WriteTextfile(path))
		Expect(string(Must(os.ReadFile(path)))).To(ContainSubstring(`dwcj_installations_total{result="success"} 1`))
	})
})
