package output

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/cityrent/zufang/pkg/models"
)

// SaveCSV writes the fetched listings to a CSV file. Returns an error on failure.
func SaveCSV(result *models.FetchResult, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"page", "title", "price", "detail"}); err != nil {
		return err
	}

	for _, l := range result.Listings {
		row := []string{
			strconv.Itoa(l.Page),
			l.Title,
			l.PriceText,
			l.Detail,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}
