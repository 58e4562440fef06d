package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"librarydesk/library"
)

var (
	bookQuery    string
	bookCategory string
	bookStatus   string
	bookSort     string
	bookDir      string
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Manage the book catalog",
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List books with search, filters and sorting",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		books, err := lib.ListBooks()
		if err != nil {
			return err
		}

		books = library.Search(books, bookQuery, library.Book.SearchFields)
		books = library.Filter(books,
			func(b library.Book) bool { return library.MatchFilter(bookCategory, b.Category) },
			func(b library.Book) bool { return library.MatchFilter(bookStatus, string(b.Status)) },
		)
		books = sortBooks(books, bookSort, library.Direction(bookDir))

		if len(books) == 0 {
			fmt.Println("No books match.")
			return nil
		}
		fmt.Printf("%-20s %-40s %-25s %-12s %-12s %s\n", "ID", "Title", "Author", "Category", "Status", "Location")
		fmt.Println(strings.Repeat("-", 120))
		for _, b := range books {
			fmt.Printf("%-20s %-40s %-25s %-12s %-12s %s\n",
				b.ID, truncateString(b.Title, 40), truncateString(b.Author, 25),
				truncateString(b.Category, 12), b.Status, b.Location)
		}
		return nil
	},
}

func sortBooks(books []library.Book, field string, dir library.Direction) []library.Book {
	switch field {
	case "author":
		return library.SortBy(books, dir, func(a, b library.Book) int {
			return library.CompareStrings(a.Author, b.Author)
		})
	case "year":
		return library.SortBy(books, dir, func(a, b library.Book) int {
			return library.CompareInts(a.PublishedYear, b.PublishedYear)
		})
	case "status":
		return library.SortBy(books, dir, func(a, b library.Book) int {
			return library.CompareStrings(string(a.Status), string(b.Status))
		})
	default:
		return library.SortBy(books, dir, func(a, b library.Book) int {
			return library.CompareStrings(a.Title, b.Title)
		})
	}
}

var newBook library.Book

var bookAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		added, err := lib.AddBook(newBook)
		if err != nil {
			return err
		}
		fmt.Printf("Added book %q (ID %s)\n", added.Title, added.ID)
		return nil
	},
}

var bookDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a book (borrowings referencing it are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		if err := lib.DeleteBook(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted book %s\n", args[0])
		return nil
	},
}

func init() {
	bookListCmd.Flags().StringVar(&bookQuery, "query", "", "substring search over title/author/isbn")
	bookListCmd.Flags().StringVar(&bookCategory, "category", library.FilterAll, "category filter")
	bookListCmd.Flags().StringVar(&bookStatus, "status", library.FilterAll, "status filter")
	bookListCmd.Flags().StringVar(&bookSort, "sort", "title", "sort field: title|author|year|status")
	bookListCmd.Flags().StringVar(&bookDir, "dir", "asc", "sort direction: asc|desc")

	bookAddCmd.Flags().StringVar(&newBook.Title, "title", "", "book title (required)")
	bookAddCmd.Flags().StringVar(&newBook.Author, "author", "", "author (required)")
	bookAddCmd.Flags().StringVar(&newBook.ISBN, "isbn", "", "ISBN")
	bookAddCmd.Flags().StringVar(&newBook.Category, "category", "", "category")
	bookAddCmd.Flags().StringVar(&newBook.Location, "location", "", "shelf location")
	bookAddCmd.Flags().IntVar(&newBook.PublishedYear, "year", 0, "published year")
	bookAddCmd.Flags().StringVar(&newBook.Publisher, "publisher", "", "publisher")
	bookAddCmd.Flags().StringVar(&newBook.Language, "language", "English", "language")
	bookAddCmd.Flags().IntVar(&newBook.Pages, "pages", 0, "page count")
	bookAddCmd.Flags().StringVar(&newBook.Description, "description", "", "description")

	bookCmd.AddCommand(bookListCmd, bookAddCmd, bookDeleteCmd)
	rootCmd.AddCommand(bookCmd)
}
