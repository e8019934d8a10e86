package types_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/verba/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetric(t *testing.T) {
	Convey("Given the optional Metric type", t, func() {
		Convey("The zero value is absent", func() {
			var m types.Metric
			So(m.Valid, ShouldBeFalse)
		})

		Convey("An absent metric marshals to null", func() {
			data, err := json.Marshal(types.AbsentMetric())
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "null")
		})

		Convey("A present metric marshals to its number", func() {
			data, err := json.Marshal(types.MetricOf(127.5))
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "127.5")
		})

		Convey("null unmarshals to absent", func() {
			var m types.Metric
			So(json.Unmarshal([]byte("null"), &m), ShouldBeNil)
			So(m.Valid, ShouldBeFalse)
		})

		Convey("A number unmarshals to present", func() {
			var m types.Metric
			So(json.Unmarshal([]byte("0.35"), &m), ShouldBeNil)
			So(m.Valid, ShouldBeTrue)
			So(m.Value, ShouldEqual, 0.35)
		})
	})
}
