package model_test

import (
	"encoding/json"
	"testing"

	model "github.com/okian/monetizer/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOrdered(t *testing.T) {
	Convey("Given an ordered trend map", t, func() {
		trends := model.NewTrendMap()
		trends.Set("techfinance", 0.9)
		trends.Set("ab", 0.9)
		trends.Set("retail", 0.6)

		Convey("Then keys come back in insertion order", func() {
			So(trends.Keys(), ShouldResemble, []string{"techfinance", "ab", "retail"})
			So(trends.Len(), ShouldEqual, 3)
		})

		Convey("When re-setting an existing key", func() {
			trends.Set("ab", 0.1)

			Convey("Then it keeps its position and takes the new value", func() {
				So(trends.Keys(), ShouldResemble, []string{"techfinance", "ab", "retail"})
				v, ok := trends.Get("ab")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 0.1)
			})
		})

		Convey("When iterating with an early stop", func() {
			var seen []string
			trends.Each(func(k string, _ float64) bool {
				seen = append(seen, k)
				return len(seen) < 2
			})

			Convey("Then iteration stops", func() {
				So(seen, ShouldResemble, []string{"techfinance", "ab"})
			})
		})

		Convey("When mutating the returned keys", func() {
			keys := trends.Keys()
			keys[0] = "mutated"

			Convey("Then the map is unaffected", func() {
				So(trends.Keys()[0], ShouldEqual, "techfinance")
			})
		})

		Convey("When marshalling to JSON", func() {
			data, err := json.Marshal(trends)

			Convey("Then the object preserves order", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, `{"techfinance":0.9,"ab":0.9,"retail":0.6}`)
			})
		})
	})

	Convey("Given a JSON object", t, func() {
		raw := []byte(`{"zeta":["subscription box"],"alpha":["ads","affiliate"]}`)

		Convey("When unmarshalling into a tactic map", func() {
			tactics := model.NewTacticMap()
			err := json.Unmarshal(raw, tactics)

			Convey("Then document order is kept", func() {
				So(err, ShouldBeNil)
				So(tactics.Keys(), ShouldResemble, []string{"zeta", "alpha"})
				v, _ := tactics.Get("alpha")
				So(v, ShouldResemble, []string{"ads", "affiliate"})
			})
		})

		Convey("When the document is not an object", func() {
			err := json.Unmarshal([]byte(`[1,2]`), model.NewTrendMap())

			Convey("Then it fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})

	Convey("Given a zero-value and nil ordered map", t, func() {
		var zero model.Ordered[int]
		var nilMap *model.Ordered[int]

		Convey("Then reads are safe and writes work on the zero value", func() {
			So(nilMap.Len(), ShouldEqual, 0)
			So(nilMap.Keys(), ShouldResemble, []string{})
			zero.Set("a", 1)
			So(zero.Len(), ShouldEqual, 1)
			data, err := json.Marshal(model.NewTacticMap())
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{}`)
		})
	})
}
